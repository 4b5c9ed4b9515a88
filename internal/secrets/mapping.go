package secrets

import (
	"sort"
	"strings"
)

// envPlaceholder is replaced with the selected environment in path templates.
const envPlaceholder = "${env}"

// Mapping binds an environment variable to a key stored under a Vault path.
// DATABASE_URL -> "${env}/database/url" becomes {EnvVar: DATABASE_URL,
// Key: url} under path "production/database".
type Mapping struct {
	EnvVar string
	Key    string
}

// Interpolate replaces every ${env} placeholder in path with env.
func Interpolate(path string, env string) string {
	return strings.ReplaceAll(path, envPlaceholder, env)
}

// GroupByPath interpolates each template and groups the mappings by their
// Vault path, so each path is read once. Templates without a "/" separator,
// or with an empty path or key, are dropped. Mappings within a group are
// sorted by EnvVar. The input map is not mutated.
func GroupByPath(templates map[string]string, env string) map[string][]Mapping {
	groups := make(map[string][]Mapping)

	for envVar, tmpl := range templates {
		path, key := splitKey(Interpolate(tmpl, env))
		if path == "" || key == "" {
			continue
		}
		groups[path] = append(groups[path], Mapping{EnvVar: envVar, Key: key})
	}

	for _, mappings := range groups {
		sort.Slice(mappings, func(i, j int) bool { return mappings[i].EnvVar < mappings[j].EnvVar })
	}

	return groups
}

// splitKey splits a path at the last "/" into the Vault path and key name.
func splitKey(path string) (string, string) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", ""
	}
	return path[:idx], path[idx+1:]
}
