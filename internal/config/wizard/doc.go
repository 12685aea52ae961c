// Package wizard provides the interactive deployment-descriptor wizard.
//
// It guides users through the questions a descriptor answers -- which
// cloud to target, which image and instance type to launch, how large
// the cluster is -- using charmbracelet/huh for form-based input, and
// writes the answers out as a paasboot.yaml file.
//
// The main entry point is RunWizard, which walks the question groups and
// returns a Result. Use BuildDescriptor to convert the result into a
// config.Descriptor and WriteDescriptor to produce the YAML file.
package wizard
