package vault

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer starts an HTTP server that answers Vault API requests with
// the handler and returns a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	t.Setenv("VAULT_TOKEN", "")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		address string
		mount   string
		wantErr bool
	}{
		{"valid address", "http://127.0.0.1:8200", "secret", false},
		{"empty address", "", "secret", true},
		{"empty mount is allowed", "http://127.0.0.1:8200", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.address, tt.mount)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.mount != tt.mount {
				t.Errorf("mount = %q, want %q", client.mount, tt.mount)
			}
		})
	}
}

func TestLogin_Token(t *testing.T) {
	t.Setenv("VAULT_TOKEN", "")

	client, err := NewClient("http://127.0.0.1:8200", "secret")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if err := Login(context.Background(), client, "token", Credentials{}); err == nil {
		t.Fatal("Login(token) expected error without a token")
	}

	if err := Login(context.Background(), client, "token", Credentials{Token: "s.deploy"}); err != nil {
		t.Fatalf("Login(token) error = %v", err)
	}
	if client.Token() != "s.deploy" {
		t.Errorf("Token() = %q, want %q", client.Token(), "s.deploy")
	}
}

func TestLogin_UnsupportedMethod(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:8200", "secret")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if err := Login(context.Background(), client, "oidc", Credentials{}); err == nil {
		t.Fatal("Login(oidc) expected error")
	}
}

func TestAppRoleAuth(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/approle/login" {
			http.NotFound(w, r)
			return
		}

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["role_id"] != "role" || body["secret_id"] != "secret" {
			writeJSON(t, w, http.StatusBadRequest, map[string]any{"errors": []string{"invalid credentials"}})
			return
		}

		writeJSON(t, w, http.StatusOK, map[string]any{
			"auth": map[string]any{"client_token": "s.approle"},
		})
	})

	if err := AppRoleAuth(context.Background(), client, "role", "secret"); err != nil {
		t.Fatalf("AppRoleAuth() error = %v", err)
	}
	if client.Token() != "s.approle" {
		t.Errorf("Token() = %q, want %q", client.Token(), "s.approle")
	}

	if err := Login(context.Background(), client, "approle", Credentials{RoleID: "role", SecretID: "wrong"}); err == nil {
		t.Fatal("Login(approle) expected error for rejected credentials")
	}
}

func TestAppRoleAuth_MissingCredentials(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:8200", "secret")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if err := AppRoleAuth(context.Background(), client, "", "secret"); err == nil {
		t.Error("expected error for empty role_id")
	}
	if err := AppRoleAuth(context.Background(), client, "role", ""); err == nil {
		t.Error("expected error for empty secret_id")
	}
}
