package secrets

import (
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		path string
		env  string
		want string
	}{
		{"${env}/database/url", "production", "production/database/url"},
		{"shared/stripe/api_key", "production", "shared/stripe/api_key"},
		{"${env}/tenants/${env}/jwt", "dev", "dev/tenants/dev/jwt"},
		{"${env}/database/url", "", "/database/url"},
	}

	for _, tt := range tests {
		t.Run(tt.path+"@"+tt.env, func(t *testing.T) {
			if got := Interpolate(tt.path, tt.env); got != tt.want {
				t.Errorf("Interpolate(%q, %q) = %q, want %q", tt.path, tt.env, got, tt.want)
			}
		})
	}
}

func TestGroupByPath(t *testing.T) {
	templates := map[string]string{
		"JWT_SECRET":            "${env}/auth/jwt_secret",
		"COOKIE_SECRET":         "${env}/auth/cookie_secret",
		"DATABASE_URL":          "${env}/database/url",
		"STRIPE_WEBHOOK_SECRET": "shared/stripe/webhook_secret",
		"BROKEN":                "no-separator",
		"NO_KEY":                "${env}/trailing/",
	}

	got := GroupByPath(templates, "production")

	want := map[string][]Mapping{
		"production/auth": {
			{EnvVar: "COOKIE_SECRET", Key: "cookie_secret"},
			{EnvVar: "JWT_SECRET", Key: "jwt_secret"},
		},
		"production/database": {
			{EnvVar: "DATABASE_URL", Key: "url"},
		},
		"shared/stripe": {
			{EnvVar: "STRIPE_WEBHOOK_SECRET", Key: "webhook_secret"},
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByPath() = %v, want %v", got, want)
	}

	if _, ok := templates["BROKEN"]; !ok {
		t.Error("GroupByPath() mutated its input")
	}
}
