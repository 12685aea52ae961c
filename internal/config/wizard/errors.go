package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errMachineRequired      = errors.New("machine image is required")
	errMachineInvalid       = errors.New("machine image must look like ami-... (EC2) or emi-... (Eucalyptus)")
	errKeynameRequired      = errors.New("keyname is required")
	errKeynameInvalid       = errors.New("keyname must be 1-64 alphanumeric characters, hyphens or underscores")
	errGroupRequired        = errors.New("security group name is required")
	errCountRequired        = errors.New("a node count is required")
	errCountInvalid         = errors.New("node count must be a positive integer")
	errOptionalCountInvalid = errors.New("leave empty for the default, or enter a positive integer")
	errMaxBelowMin          = errors.New("maximum node count must be at least the minimum")
)
