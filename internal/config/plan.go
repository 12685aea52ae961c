package config

// Plan is the validated, fully-defaulted deployment plan produced by
// Resolve. Every field a downstream consumer needs is present and
// internally consistent: Min <= Max, and ReplicationFactor never exceeds
// the database-role machine count the plan was resolved against.
type Plan struct {
	Infrastructure Infrastructure
	Machine        string
	InstanceType   string
	Table          Table
	Keyname        string
	Group          string
	Verbose        bool
	Min            int
	Max            int

	// ReplicationFactor is the resolved datastore replication factor,
	// handed to the database collaborator at cluster-init time.
	ReplicationFactor int

	// StaticAppServers pins the AppServer count when non-nil. Nil means
	// the autoscaling collaborator manages the count from live request
	// and queue signals.
	StaticAppServers *int

	// SCPSource is the local source tree to copy onto the cluster, empty
	// when the released code should be used.
	SCPSource string

	// Test enables test mode (default credentials, no prompts).
	Test bool
}

// DynamicAppServers reports whether the AppServer count is managed by the
// autoscaler rather than pinned.
func (p *Plan) DynamicAppServers() bool {
	return p.StaticAppServers == nil
}
