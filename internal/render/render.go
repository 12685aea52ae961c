// Package render formats a resolved deployment plan for terminal
// display. Styling is applied only when writing to a terminal; piped
// output stays plain.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/layout"
)

// Renderer formats plans for display.
type Renderer struct {
	styled bool
}

// NewRenderer creates a renderer that styles its output when stdout is a
// terminal.
func NewRenderer() *Renderer {
	return &Renderer{
		styled: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewPlainRenderer creates a renderer that never styles its output.
func NewPlainRenderer() *Renderer {
	return &Renderer{}
}

// Format returns a detailed rendition of the plan and its role placement.
func (r *Renderer) Format(plan *config.Plan, l *layout.Layout) string {
	var sb strings.Builder

	sb.WriteString(r.style(titleStyle, "Deployment Plan"))
	sb.WriteString("\n\n")

	sb.WriteString(r.style(sectionStyle, "Cloud"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Infrastructure  %s\n", plan.Infrastructure)
	fmt.Fprintf(&sb, "  Machine         %s\n", plan.Machine)
	fmt.Fprintf(&sb, "  Instance type   %s\n", plan.InstanceType)
	fmt.Fprintf(&sb, "  Keyname         %s\n", plan.Keyname)
	fmt.Fprintf(&sb, "  Security group  %s\n", plan.Group)

	sb.WriteString("\n")
	sb.WriteString(r.style(sectionStyle, "Cluster"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Initial size    %d\n", plan.Min)
	fmt.Fprintf(&sb, "  Maximum size    %d\n", plan.Max)
	fmt.Fprintf(&sb, "  Datastore       %s (replication factor %d)\n", plan.Table, plan.ReplicationFactor)
	if plan.DynamicAppServers() {
		sb.WriteString("  App servers     dynamic (autoscaled)\n")
	} else {
		fmt.Fprintf(&sb, "  App servers     %d per application (static)\n", *plan.StaticAppServers)
	}

	sb.WriteString("\n")
	sb.WriteString(r.style(sectionStyle, "Role Placement"))
	sb.WriteString("\n")
	for _, node := range l.Nodes {
		line := fmt.Sprintf("  node %-3d %s", node.Index, joinRoles(node.Roles))
		switch {
		case node.HasRole(layout.RoleMaster):
			line = r.style(headNodeStyle, line)
		case node.HasRole(layout.RoleOpen):
			line = r.style(dimStyle, line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if plan.SCPSource != "" {
		sb.WriteString("\n")
		sb.WriteString(r.style(dimStyle, fmt.Sprintf("  Source override: %s", plan.SCPSource)))
		sb.WriteString("\n")
	}
	if plan.Test {
		sb.WriteString(r.style(dimStyle, "  Test mode enabled"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatCompact returns a single-line plan summary.
func (r *Renderer) FormatCompact(plan *config.Plan, l *layout.Layout) string {
	appServers := "dynamic"
	if !plan.DynamicAppServers() {
		appServers = fmt.Sprintf("%d static", *plan.StaticAppServers)
	}
	return fmt.Sprintf("%s %s x%d-%d, %s n=%d, app servers %s",
		plan.Infrastructure, plan.InstanceType, plan.Min, plan.Max,
		plan.Table, plan.ReplicationFactor, appServers)
}

// FormatJSON returns the plan and placement as JSON for tooling.
func (r *Renderer) FormatJSON(plan *config.Plan, l *layout.Layout) string {
	type jsonNode struct {
		Index int      `json:"index"`
		Roles []string `json:"roles"`
	}
	type jsonPlan struct {
		Infrastructure    string     `json:"infrastructure"`
		Machine           string     `json:"machine"`
		InstanceType      string     `json:"instance_type"`
		Table             string     `json:"table"`
		Keyname           string     `json:"keyname"`
		Group             string     `json:"group"`
		Min               int        `json:"min"`
		Max               int        `json:"max"`
		ReplicationFactor int        `json:"replication_factor"`
		StaticAppServers  *int       `json:"static_app_servers,omitempty"`
		Nodes             []jsonNode `json:"nodes"`
	}

	jp := jsonPlan{
		Infrastructure:    string(plan.Infrastructure),
		Machine:           plan.Machine,
		InstanceType:      plan.InstanceType,
		Table:             string(plan.Table),
		Keyname:           plan.Keyname,
		Group:             plan.Group,
		Min:               plan.Min,
		Max:               plan.Max,
		ReplicationFactor: plan.ReplicationFactor,
		StaticAppServers:  plan.StaticAppServers,
	}
	for _, node := range l.Nodes {
		jn := jsonNode{Index: node.Index}
		for _, role := range node.Roles {
			jn.Roles = append(jn.Roles, string(role))
		}
		jp.Nodes = append(jp.Nodes, jn)
	}

	data, _ := json.MarshalIndent(jp, "", "  ")
	return string(data)
}

// style applies s to text when styling is on.
func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func joinRoles(roles []layout.Role) string {
	parts := make([]string, len(roles))
	for i, role := range roles {
		parts[i] = string(role)
	}
	return strings.Join(parts, ", ")
}
