package config

// Infrastructure identifies the cloud API flavor a deployment runs on.
type Infrastructure string

const (
	// InfraEC2 is Amazon EC2.
	InfraEC2 Infrastructure = "ec2"
	// InfraEucalyptus is a Eucalyptus private cloud, which exposes the
	// EC2-compatible API on its own endpoint.
	InfraEucalyptus Infrastructure = "euca"
)

// Infrastructures lists the accepted values for the infrastructure field.
var Infrastructures = []string{string(InfraEC2), string(InfraEucalyptus)}

// Table identifies the database backend the cluster stores data in.
type Table string

const (
	// TableCassandra is the default datastore backend.
	TableCassandra Table = "cassandra"
	// TableHypertable is the alternative datastore backend.
	TableHypertable Table = "hypertable"
)

// Tables lists the accepted values for the table field.
var Tables = []string{string(TableCassandra), string(TableHypertable)}

// Descriptor is the raw deployment descriptor as the operator wrote it.
// Every field is a pointer so that an absent key decodes to nil and is
// never conflated with an explicit zero value. The descriptor is
// immutable once parsed; Resolve never mutates it.
type Descriptor struct {
	Infrastructure *string `mapstructure:"infrastructure" yaml:"infrastructure,omitempty"`
	Machine        *string `mapstructure:"machine" yaml:"machine,omitempty"`
	InstanceType   *string `mapstructure:"instance_type" yaml:"instance_type,omitempty"`
	Table          *string `mapstructure:"table" yaml:"table,omitempty"`
	Keyname        *string `mapstructure:"keyname" yaml:"keyname,omitempty"`
	Group          *string `mapstructure:"group" yaml:"group,omitempty"`
	Verbose        *bool   `mapstructure:"verbose" yaml:"verbose,omitempty"`
	Min            *int    `mapstructure:"min" yaml:"min,omitempty"`
	Max            *int    `mapstructure:"max" yaml:"max,omitempty"`

	// Replication is the datastore replication factor, keyed "n" in the
	// descriptor. Derived from the database-role machine count when absent.
	Replication *int `mapstructure:"n" yaml:"n,omitempty"`

	// SCP points at a local source tree to copy onto the cluster instead
	// of the released one. Developer-only override.
	SCP *string `mapstructure:"scp" yaml:"scp,omitempty"`

	// Test enables test mode (default credentials, no prompts).
	// Developer-only.
	Test *bool `mapstructure:"test" yaml:"test,omitempty"`

	// AppEngine pins a static AppServer count. Absent means the
	// autoscaler manages the count dynamically.
	AppEngine *int `mapstructure:"appengine" yaml:"appengine,omitempty"`
}
