// Package medusa turns an environment snapshot into the module configuration
// consumed by the Medusa module loader.
//
// Resolution is a pure function of the snapshot. Mandatory secrets are
// validated before any module is considered, and optional modules are only
// emitted when their whole toggle group is present.
package medusa

import (
	"fmt"

	"go.dot.industries/storewire/internal/env"
)

// Base settings and their local-development defaults.
const (
	EnvBackendURL = "MEDUSA_BACKEND_URL"
	EnvAdminCORS  = "MEDUSA_ADMIN_CORS"
	EnvAuthCORS   = "MEDUSA_AUTH_CORS"
	EnvStoreCORS  = "MEDUSA_STORE_CORS"

	DefaultBackendURL = "http://localhost:9000"
	DefaultAdminCORS  = "http://localhost:7001"
	DefaultAuthCORS   = "http://localhost:7001"
	DefaultStoreCORS  = "http://localhost:3000"

	workerModeShared = "shared"
)

// dashboardPackage is bundled separately and must stay external.
const dashboardPackage = "@medusajs/dashboard"

// Option configures Resolve.
type Option func(*resolver)

// WithStrict makes an unset backend URL a fatal error even outside a managed
// deployment.
func WithStrict(strict bool) Option {
	return func(r *resolver) {
		r.strict = strict
	}
}

// WithManagedVars overrides the identifiers used to detect a managed
// deployment. Empty slices are ignored.
func WithManagedVars(vars []string) Option {
	return func(r *resolver) {
		if len(vars) > 0 {
			r.managedVars = vars
		}
	}
}

type resolver struct {
	snap        env.Snapshot
	strict      bool
	managedVars []string
}

// Resolve produces the Resolved configuration for s. It returns a
// *MissingConfigError, and no configuration, when a required secret is
// missing. Optional modules with incomplete credentials are simply left out.
func Resolve(s env.Snapshot, opts ...Option) (*Resolved, error) {
	r := &resolver{snap: s}
	for _, opt := range opts {
		opt(r)
	}

	secrets, err := requireAll(s)
	if err != nil {
		return nil, err
	}

	out := &Resolved{}

	if err := r.resolveBaseSettings(out, secrets); err != nil {
		return nil, err
	}

	out.Modules = append(out.Modules, r.resolveStorageModule(out.Admin.BackendURL))
	out.Modules = append(out.Modules, r.resolveEventingModules(out)...)
	if m, ok := r.resolveNotificationModule(); ok {
		out.Modules = append(out.Modules, m)
	}
	if m, ok := r.resolvePaymentModule(); ok {
		out.Modules = append(out.Modules, m)
	}

	out.Plugins = []Plugin{}
	if p, ok := r.resolveSearchPlugin(); ok {
		out.Plugins = append(out.Plugins, p)
	}

	return out, nil
}

// resolveBaseSettings fills the non-optional settings.
func (r *resolver) resolveBaseSettings(out *Resolved, secrets requiredSecrets) error {
	backendURL, err := r.backendURL(out)
	if err != nil {
		return err
	}

	out.Project = ProjectConfig{
		DatabaseURL:     secrets.databaseURL,
		DatabaseLogging: false,
		WorkerMode:      workerModeShared,
		HTTP: HTTPConfig{
			AdminCORS:    r.snap.GetOr(EnvAdminCORS, DefaultAdminCORS),
			AuthCORS:     r.snap.GetOr(EnvAuthCORS, DefaultAuthCORS),
			StoreCORS:    r.snap.GetOr(EnvStoreCORS, DefaultStoreCORS),
			JWTSecret:    secrets.jwtSecret,
			CookieSecret: secrets.cookieSecret,
		},
		Build: BuildConfig{RollupOptions: RollupOptions{External: []string{dashboardPackage}}},
	}

	out.Admin = AdminConfig{
		BackendURL: backendURL,
		Disable:    false,
	}

	return nil
}

// backendURL returns the public backend URL. The localhost fallback is only
// allowed for local builds, and always produces a warning.
func (r *resolver) backendURL(out *Resolved) (string, error) {
	if v := r.snap.Get(EnvBackendURL); v != "" {
		return v, nil
	}

	if r.strict || env.Managed(r.snap, r.managedVars) {
		return "", &MissingConfigError{Name: EnvBackendURL}
	}

	out.Warnings = append(out.Warnings,
		fmt.Sprintf("%s is not set; falling back to %s (local development only)", EnvBackendURL, DefaultBackendURL))

	return DefaultBackendURL, nil
}
