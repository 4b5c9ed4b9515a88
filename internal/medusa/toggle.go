package medusa

import "go.dot.industries/storewire/internal/env"

// Group is a set of variables that jointly gate one optional module.
type Group struct {
	Name   string
	Module string
	Vars   []string
}

// Values returns the group's values keyed by variable name, and true only
// when every variable is present. A partial set yields nil, false.
func (g Group) Values(s env.Snapshot) (map[string]string, bool) {
	values := make(map[string]string, len(g.Vars))
	for _, name := range g.Vars {
		if !s.Present(name) {
			return nil, false
		}
		values[name] = s.Get(name)
	}
	return values, true
}

// State is the activation state of a toggle group.
type State string

const (
	StateEnabled  State = "enabled"
	StatePartial  State = "partial"
	StateDisabled State = "disabled"
)

// State reports whether the group is fully, partially, or not at all
// configured. A partial group is still treated as disabled.
func (g Group) State(s env.Snapshot) State {
	set := 0
	for _, name := range g.Vars {
		if s.Present(name) {
			set++
		}
	}

	switch {
	case set == len(g.Vars):
		return StateEnabled
	case set > 0:
		return StatePartial
	default:
		return StateDisabled
	}
}

// Missing returns the group's variables that are not present.
func (g Group) Missing(s env.Snapshot) []string {
	var missing []string
	for _, name := range g.Vars {
		if !s.Present(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

var (
	groupMinio = Group{
		Name:   "minio",
		Module: KeyFile,
		Vars:   []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"},
	}
	groupRedis = Group{
		Name:   "redis",
		Module: KeyEventBus + "+" + KeyWorkflowEngine,
		Vars:   []string{"REDIS_URL"},
	}
	groupSendgrid = Group{
		Name:   "sendgrid",
		Module: KeyNotification,
		Vars:   []string{"SENDGRID_API_KEY", "SENDGRID_FROM_EMAIL"},
	}
	groupResend = Group{
		Name:   "resend",
		Module: KeyNotification,
		Vars:   []string{"RESEND_API_KEY", "RESEND_FROM_EMAIL"},
	}
	groupStripe = Group{
		Name:   "stripe",
		Module: KeyPayment,
		Vars:   []string{"STRIPE_API_KEY", "STRIPE_WEBHOOK_SECRET"},
	}
	groupMeilisearch = Group{
		Name:   "meilisearch",
		Module: "plugin",
		Vars:   []string{"MEILISEARCH_HOST", "MEILISEARCH_ADMIN_KEY"},
	}
)

// Groups returns every optional feature toggle group in resolution order.
func Groups() []Group {
	return []Group{groupMinio, groupRedis, groupSendgrid, groupResend, groupStripe, groupMeilisearch}
}

// GroupStatus pairs a group with its state for a given snapshot.
type GroupStatus struct {
	Group   Group
	State   State
	Missing []string
}

// Status evaluates every toggle group against s.
func Status(s env.Snapshot) []GroupStatus {
	groups := Groups()
	out := make([]GroupStatus, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupStatus{Group: g, State: g.State(s), Missing: g.Missing(s)})
	}
	return out
}
