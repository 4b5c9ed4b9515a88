package medusa

import "strings"

// Mask replaces secret values in redacted output.
const Mask = "********"

// secretOptionKeys are option-bag keys whose values are credentials.
var secretOptionKeys = map[string]bool{
	"accessKey":     true,
	"secretKey":     true,
	"api_key":       true,
	"apiKey":        true,
	"webhookSecret": true,
}

// urlOptionKeys are option-bag keys whose values are URLs that may embed a
// password.
var urlOptionKeys = map[string]bool{
	"redisUrl": true,
	"url":      true,
}

// Redacted returns a deep copy of r with every secret masked. The receiver is
// not modified.
func (r *Resolved) Redacted() *Resolved {
	out := *r

	out.Project.DatabaseURL = redactURL(r.Project.DatabaseURL)
	out.Project.RedisURL = redactURL(r.Project.RedisURL)
	out.Project.HTTP.JWTSecret = Mask
	out.Project.HTTP.CookieSecret = Mask
	out.Project.Build.RollupOptions.External = append([]string(nil), r.Project.Build.RollupOptions.External...)
	out.Warnings = append([]string(nil), r.Warnings...)

	out.Modules = make([]Module, len(r.Modules))
	for i, m := range r.Modules {
		out.Modules[i] = Module{
			Key:     m.Key,
			Resolve: m.Resolve,
			Options: redactOptions(m.Options),
		}
		if m.Providers != nil {
			out.Modules[i].Providers = make([]Provider, len(m.Providers))
			for j, p := range m.Providers {
				out.Modules[i].Providers[j] = Provider{
					Resolve: p.Resolve,
					ID:      p.ID,
					Options: redactOptions(p.Options),
				}
			}
		}
	}

	out.Plugins = make([]Plugin, len(r.Plugins))
	for i, p := range r.Plugins {
		out.Plugins[i] = Plugin{Resolve: p.Resolve, Options: redactOptions(p.Options)}
	}

	return &out
}

// redactOptions copies an option bag, masking credentials at any depth.
func redactOptions(opts Options) Options {
	if opts == nil {
		return nil
	}

	out := make(Options, len(opts))
	for k, v := range opts {
		switch {
		case secretOptionKeys[k]:
			out[k] = Mask
		case urlOptionKeys[k]:
			if s, ok := v.(string); ok {
				out[k] = redactURL(s)
			} else {
				out[k] = v
			}
		default:
			if nested, ok := v.(Options); ok {
				out[k] = redactOptions(nested)
			} else {
				out[k] = v
			}
		}
	}
	return out
}

// redactURL masks the password of a connection URL. It works on the raw
// string rather than a parsed URL, since generated passwords often contain
// characters that make parsing fail. Anything after the scheme up to the last
// "@" is treated as user info, and a scheme-less value with user info is
// masked whole.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if strings.Contains(raw, "@") {
			return Mask
		}
		return raw
	}

	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return raw
	}

	user, _, hasPassword := strings.Cut(rest[:at], ":")
	if !hasPassword {
		return raw
	}

	return scheme + "://" + user + ":" + Mask + rest[at:]
}
