// Package layout computes the role placement for a cluster deployment.
//
// The default cloud placement puts every control role on the head node
// and spreads the data and serving roles across the remaining members.
// The resolver consumes the database-role count from here when deriving
// the replication factor.
package layout

// Role is a logical responsibility assigned to a subset of cluster
// machines.
type Role string

const (
	// RoleMaster runs the controller that coordinates the deployment.
	RoleMaster Role = "master"
	// RoleDatabase stores and replicates application data.
	RoleDatabase Role = "database"
	// RoleAppEngine hosts AppServer worker processes.
	RoleAppEngine Role = "appengine"
	// RoleLogin terminates operator and user traffic.
	RoleLogin Role = "login"
	// RoleOpen marks spare capacity the autoscaler may claim, between
	// the initial size and the cluster ceiling.
	RoleOpen Role = "open"
)

// Node is one cluster member with its assigned roles.
type Node struct {
	Index int
	Roles []Role
}

// Layout is a complete role placement for a cluster of a given size.
type Layout struct {
	Nodes []Node
}

// Compute builds the default placement for a cluster that boots with min
// members and may grow to max. Node 0 is the head node and carries
// master, database, appengine and login; nodes 1..min-1 carry database
// and appengine; the slots from min to max-1 are open capacity.
//
// Compute assumes min and max were already validated (min >= 1,
// max >= min); it is a placement table, not a validator.
func Compute(min, max int) *Layout {
	nodes := make([]Node, 0, max)

	nodes = append(nodes, Node{
		Index: 0,
		Roles: []Role{RoleMaster, RoleDatabase, RoleAppEngine, RoleLogin},
	})

	for i := 1; i < min; i++ {
		nodes = append(nodes, Node{
			Index: i,
			Roles: []Role{RoleDatabase, RoleAppEngine},
		})
	}

	for i := min; i < max; i++ {
		nodes = append(nodes, Node{Index: i, Roles: []Role{RoleOpen}})
	}

	return &Layout{Nodes: nodes}
}

// Count returns how many nodes carry the given role.
func (l *Layout) Count(role Role) int {
	count := 0
	for _, node := range l.Nodes {
		if node.HasRole(role) {
			count++
		}
	}
	return count
}

// HasRole reports whether the node carries the given role.
func (n *Node) HasRole(role Role) bool {
	for _, r := range n.Roles {
		if r == role {
			return true
		}
	}
	return false
}
