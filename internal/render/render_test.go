package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/layout"
)

func testPlan() *config.Plan {
	return &config.Plan{
		Infrastructure:    config.InfraEC2,
		Machine:           "ami-0123abcd",
		InstanceType:      "m1.large",
		Table:             config.TableCassandra,
		Keyname:           "appscale",
		Group:             "appscale",
		Min:               3,
		Max:               5,
		ReplicationFactor: 3,
	}
}

func TestFormat_PlainOutput(t *testing.T) {
	plan := testPlan()
	l := layout.Compute(plan.Min, plan.Max)

	out := NewPlainRenderer().Format(plan, l)

	assert.Contains(t, out, "Deployment Plan")
	assert.Contains(t, out, "ami-0123abcd")
	assert.Contains(t, out, "cassandra (replication factor 3)")
	assert.Contains(t, out, "dynamic (autoscaled)")
	assert.Contains(t, out, "node 0")
	assert.Contains(t, out, "master, database, appengine, login")
	assert.NotContains(t, out, "\x1b[", "plain renderer emits no escape sequences")

	// One line per slot up to the ceiling.
	assert.Equal(t, plan.Max, strings.Count(out, "  node "))
}

func TestFormat_StaticAppServersAndOverrides(t *testing.T) {
	plan := testPlan()
	three := 3
	plan.StaticAppServers = &three
	plan.SCPSource = "/home/dev/appscale"
	plan.Test = true
	l := layout.Compute(plan.Min, plan.Max)

	out := NewPlainRenderer().Format(plan, l)

	assert.Contains(t, out, "3 per application (static)")
	assert.Contains(t, out, "Source override: /home/dev/appscale")
	assert.Contains(t, out, "Test mode enabled")
}

func TestFormatCompact(t *testing.T) {
	plan := testPlan()
	l := layout.Compute(plan.Min, plan.Max)

	out := NewPlainRenderer().FormatCompact(plan, l)
	assert.Equal(t, "ec2 m1.large x3-5, cassandra n=3, app servers dynamic", out)
}

func TestFormatJSON(t *testing.T) {
	plan := testPlan()
	l := layout.Compute(plan.Min, plan.Max)

	out := NewPlainRenderer().FormatJSON(plan, l)

	var decoded struct {
		Infrastructure    string `json:"infrastructure"`
		ReplicationFactor int    `json:"replication_factor"`
		StaticAppServers  *int   `json:"static_app_servers"`
		Nodes             []struct {
			Index int      `json:"index"`
			Roles []string `json:"roles"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "ec2", decoded.Infrastructure)
	assert.Equal(t, 3, decoded.ReplicationFactor)
	assert.Nil(t, decoded.StaticAppServers)
	require.Len(t, decoded.Nodes, 5)
	assert.Equal(t, []string{"master", "database", "appengine", "login"}, decoded.Nodes[0].Roles)
	assert.Equal(t, []string{"open"}, decoded.Nodes[4].Roles)
}
