package medusa

import (
	"testing"

	"go.dot.industries/storewire/internal/env"
)

func TestGroup_Values(t *testing.T) {
	g := Group{Name: "pair", Vars: []string{"A", "B"}}

	tests := []struct {
		name   string
		vars   map[string]string
		wantOK bool
	}{
		{"none", nil, false},
		{"first only", map[string]string{"A": "1"}, false},
		{"second empty", map[string]string{"A": "1", "B": ""}, false},
		{"both", map[string]string{"A": "1", "B": "2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, ok := g.Values(env.FromMap(tt.vars))
			if ok != tt.wantOK {
				t.Fatalf("Values() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok && values != nil {
				t.Errorf("Values() returned %v for an incomplete group", values)
			}
			if ok && (values["A"] != "1" || values["B"] != "2") {
				t.Errorf("Values() = %v", values)
			}
		})
	}
}

func TestGroup_StateAndMissing(t *testing.T) {
	g := Group{Name: "pair", Vars: []string{"A", "B"}}

	tests := []struct {
		name        string
		vars        map[string]string
		want        State
		wantMissing int
	}{
		{"disabled", nil, StateDisabled, 2},
		{"partial", map[string]string{"B": "2"}, StatePartial, 1},
		{"enabled", map[string]string{"A": "1", "B": "2"}, StateEnabled, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := env.FromMap(tt.vars)
			if got := g.State(s); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
			if got := len(g.Missing(s)); got != tt.wantMissing {
				t.Errorf("len(Missing()) = %d, want %d", got, tt.wantMissing)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	s := env.FromMap(map[string]string{
		"REDIS_URL":        "redis://cache",
		"SENDGRID_API_KEY": "SG.key",
	})

	byName := make(map[string]GroupStatus)
	for _, st := range Status(s) {
		byName[st.Group.Name] = st
	}

	if len(byName) != len(Groups()) {
		t.Fatalf("Status() returned %d groups, want %d", len(byName), len(Groups()))
	}
	if byName["redis"].State != StateEnabled {
		t.Errorf("redis = %q, want enabled", byName["redis"].State)
	}
	if byName["sendgrid"].State != StatePartial {
		t.Errorf("sendgrid = %q, want partial", byName["sendgrid"].State)
	}
	if got := byName["sendgrid"].Missing; len(got) != 1 || got[0] != "SENDGRID_FROM_EMAIL" {
		t.Errorf("sendgrid missing = %v", got)
	}
	if byName["stripe"].State != StateDisabled {
		t.Errorf("stripe = %q, want disabled", byName["stripe"].State)
	}
}
