package vault

import (
	"context"
	"fmt"
)

// Credentials carries the inputs for each supported auth method.
type Credentials struct {
	Token    string
	RoleID   string
	SecretID string
}

// Login authenticates c with the given method. "token" uses creds.Token,
// falling back to a token the client already picked up from VAULT_TOKEN.
// "approle" exchanges a role and secret ID for a token.
func Login(ctx context.Context, c *Client, method string, creds Credentials) error {
	switch method {
	case "token":
		if creds.Token != "" {
			c.SetToken(creds.Token)
		}
		if c.Token() == "" {
			return fmt.Errorf("token auth: no token provided (set VAULT_TOKEN)")
		}
		return nil
	case "approle":
		return AppRoleAuth(ctx, c, creds.RoleID, creds.SecretID)
	default:
		return fmt.Errorf("unsupported auth method: %s", method)
	}
}

// AppRoleAuth authenticates to Vault using AppRole credentials. This is
// intended for CI pipelines and deploy hooks. On success the client's token
// is set to the newly obtained token.
func AppRoleAuth(ctx context.Context, c *Client, roleID string, secretID string) error {
	if roleID == "" {
		return fmt.Errorf("approle auth: role_id is required")
	}

	if secretID == "" {
		return fmt.Errorf("approle auth: secret_id is required")
	}

	data := map[string]interface{}{
		"role_id":   roleID,
		"secret_id": secretID,
	}

	secret, err := c.inner.Logical().WriteWithContext(ctx, "auth/approle/login", data)
	if err != nil {
		return fmt.Errorf("approle auth: %w", err)
	}

	if secret == nil || secret.Auth == nil {
		return fmt.Errorf("approle auth: empty auth response")
	}

	c.SetToken(secret.Auth.ClientToken)

	return nil
}
