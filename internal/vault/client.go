package vault

import (
	"fmt"

	vaultapi "github.com/hashicorp/vault/api"
)

// Client wraps the official HashiCorp Vault API client with the KV v2 mount
// that secrets are read from.
type Client struct {
	inner *vaultapi.Client
	mount string
}

// NewClient creates a new Vault API client pointed at the given address.
// The mount is the KV v2 mount point (e.g. "secret").
func NewClient(address string, mount string) (*Client, error) {
	if address == "" {
		return nil, fmt.Errorf("vault address is required")
	}

	cfg := vaultapi.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("reading vault environment: %w", cfg.Error)
	}
	cfg.Address = address

	inner, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}

	return &Client{
		inner: inner,
		mount: mount,
	}, nil
}

// Token returns the current authentication token.
func (c *Client) Token() string {
	return c.inner.Token()
}

// SetToken sets the authentication token on the client.
func (c *Client) SetToken(token string) {
	c.inner.SetToken(token)
}
