package vault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	vaultapi "github.com/hashicorp/vault/api"
)

// ReadKV reads all key-value pairs at the given KV v2 path relative to the
// client's mount. With mount "secret" and path "production/database" the API
// path is "secret/data/production/database".
//
// Returns an empty map when the path does not exist. Non-string values are
// skipped.
func (c *Client) ReadKV(ctx context.Context, kvPath string) (map[string]string, error) {
	secret, err := c.inner.Logical().ReadWithContext(ctx, buildKV2Path(c.mount, kvPath))
	if err != nil {
		if isPermissionDenied(err) {
			return nil, fmt.Errorf("reading KV path %q: permission denied: %w", kvPath, err)
		}
		return nil, fmt.Errorf("reading KV path %q: %w", kvPath, err)
	}

	if secret == nil || secret.Data == nil {
		return make(map[string]string), nil
	}

	return extractKV2Data(secret.Data, kvPath)
}

// buildKV2Path inserts "data" between the mount point and the secret path.
func buildKV2Path(mount string, kvPath string) string {
	return path.Join(mount, "data", kvPath)
}

// extractKV2Data unwraps the nested KV v2 payload in response.Data["data"].
func extractKV2Data(responseData map[string]interface{}, kvPath string) (map[string]string, error) {
	dataRaw, ok := responseData["data"]
	if !ok || dataRaw == nil {
		return make(map[string]string), nil
	}

	dataMap, ok := dataRaw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("reading KV path %q: unexpected data format", kvPath)
	}

	result := make(map[string]string, len(dataMap))
	for key, val := range dataMap {
		if str, ok := val.(string); ok {
			result[key] = str
		}
	}

	return result, nil
}

func isPermissionDenied(err error) bool {
	var respErr *vaultapi.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusForbidden
	}
	return false
}
