package medusa

import "encoding/json"

// Capability keys understood by the platform's module loader.
const (
	KeyFile           = "file"
	KeyEventBus       = "event_bus"
	KeyWorkflowEngine = "workflows"
	KeyNotification   = "notification"
	KeyPayment        = "payment"
)

const optionProviders = "providers"

// Options is a provider- or module-specific option bag.
type Options map[string]any

// Resolved is the full configuration handed to the platform's module loader.
type Resolved struct {
	Project ProjectConfig `json:"projectConfig" toml:"project_config"`
	Admin   AdminConfig   `json:"admin" toml:"admin"`
	Modules []Module      `json:"modules" toml:"modules"`
	Plugins []Plugin      `json:"plugins" toml:"plugins"`

	// Warnings are non-fatal findings produced during resolution.
	Warnings []string `json:"-" toml:"-"`
}

// ProjectConfig holds the non-optional base settings.
type ProjectConfig struct {
	DatabaseURL     string      `json:"databaseUrl" toml:"database_url"`
	DatabaseLogging bool        `json:"databaseLogging" toml:"database_logging"`
	RedisURL        string      `json:"redisUrl,omitempty" toml:"redis_url,omitempty"`
	WorkerMode      string      `json:"workerMode" toml:"worker_mode"`
	HTTP            HTTPConfig  `json:"http" toml:"http"`
	Build           BuildConfig `json:"build" toml:"build"`
}

// HTTPConfig holds CORS allow-lists and signing secrets.
type HTTPConfig struct {
	AdminCORS    string `json:"adminCors" toml:"admin_cors"`
	AuthCORS     string `json:"authCors" toml:"auth_cors"`
	StoreCORS    string `json:"storeCors" toml:"store_cors"`
	JWTSecret    string `json:"jwtSecret" toml:"jwt_secret"`
	CookieSecret string `json:"cookieSecret" toml:"cookie_secret"`
}

// BuildConfig holds bundler settings.
type BuildConfig struct {
	RollupOptions RollupOptions `json:"rollupOptions" toml:"rollup_options"`
}

// RollupOptions lists packages the platform bundler must leave external.
type RollupOptions struct {
	External []string `json:"external" toml:"external"`
}

// AdminConfig configures the admin dashboard.
type AdminConfig struct {
	BackendURL string `json:"backendUrl" toml:"backend_url"`
	Disable    bool   `json:"disable" toml:"disable"`
}

// Module describes one active subsystem. Key is the capability it fills,
// Resolve names the package or local path implementing it. The module loader
// expects providers inside the option bag, which is how a Module encodes.
type Module struct {
	Key       string
	Resolve   string
	Options   Options
	Providers []Provider
}

// wireModule is the encoded form of a Module.
type wireModule struct {
	Key     string  `json:"key" toml:"key"`
	Resolve string  `json:"resolve" toml:"resolve"`
	Options Options `json:"options,omitempty" toml:"options,omitempty"`
}

// wire returns the module in the shape the module loader reads, with any
// providers nested under options.providers. m is not modified.
func (m Module) wire() wireModule {
	w := wireModule{Key: m.Key, Resolve: m.Resolve}

	if len(m.Options) == 0 && len(m.Providers) == 0 {
		return w
	}

	w.Options = make(Options, len(m.Options)+1)
	for k, v := range m.Options {
		w.Options[k] = v
	}
	if len(m.Providers) > 0 {
		w.Options[optionProviders] = append([]Provider(nil), m.Providers...)
	}

	return w
}

// MarshalJSON encodes the wire form of m.
func (m Module) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// Provider is a concrete implementation registered inside a module.
type Provider struct {
	Resolve string  `json:"resolve" toml:"resolve"`
	ID      string  `json:"id" toml:"id"`
	Options Options `json:"options" toml:"options"`
}

// Plugin describes a platform plugin.
type Plugin struct {
	Resolve string  `json:"resolve" toml:"resolve"`
	Options Options `json:"options" toml:"options"`
}

// Module returns the first module registered under key.
func (r *Resolved) Module(key string) (Module, bool) {
	for _, m := range r.Modules {
		if m.Key == key {
			return m, true
		}
	}
	return Module{}, false
}
