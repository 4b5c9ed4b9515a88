package config

import "testing"

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RootConfig)
	}{
		{"missing default env", func(c *RootConfig) { c.Environments.Default = "" }},
		{"empty available envs", func(c *RootConfig) { c.Environments.Available = nil }},
		{"default not in available", func(c *RootConfig) { c.Environments.Default = "staging" }},
		{"secrets without vault address", func(c *RootConfig) {
			c.Secrets = map[string]string{"DATABASE_URL": "${env}/database/url"}
		}},
		{"unsupported auth method", func(c *RootConfig) {
			c.Secrets = map[string]string{"DATABASE_URL": "${env}/database/url"}
			c.Vault.Address = "https://vault.example.com"
			c.Vault.AuthMethod = "oidc"
		}},
		{"secret path without key", func(c *RootConfig) {
			c.Secrets = map[string]string{"DATABASE_URL": "database"}
			c.Vault.Address = "https://vault.example.com"
		}},
		{"secret path with trailing slash", func(c *RootConfig) {
			c.Secrets = map[string]string{"DATABASE_URL": "${env}/database/"}
			c.Vault.Address = "https://vault.example.com"
		}},
		{"absolute output dir", func(c *RootConfig) { c.Build.OutputDir = "/srv/app" }},
		{"output dir escapes root", func(c *RootConfig) { c.Build.OutputDir = "../elsewhere" }},
		{"empty install command", func(c *RootConfig) { c.Build.Install = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			if err := Validate(cfg); err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
		})
	}
}

func TestValidate_SecretsWithVault(t *testing.T) {
	cfg := validConfig()
	cfg.Secrets = map[string]string{"DATABASE_URL": "${env}/database/url"}
	cfg.Vault.Address = "https://vault.example.com"

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
