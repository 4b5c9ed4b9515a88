package config

// FileName is the project configuration file searched for by FindRootConfig.
const FileName = "storewire.toml"

// RootConfig represents the storewire.toml project file.
type RootConfig struct {
	Environments EnvironmentConfig `toml:"environments"`
	Vault        VaultConfig       `toml:"vault"`
	Secrets      map[string]string `toml:"secrets"`
	Build        BuildConfig       `toml:"build"`
}

// EnvironmentConfig defines available environments and the default selection.
type EnvironmentConfig struct {
	Default   string   `toml:"default"`
	Available []string `toml:"available"`
}

// VaultConfig holds Vault server connection settings used to source secrets
// into the environment snapshot.
type VaultConfig struct {
	Address    string `toml:"address"`
	AuthMethod string `toml:"auth_method"`
	BasePath   string `toml:"base_path"`
}

// BuildConfig parameterizes the build finalizer.
type BuildConfig struct {
	OutputDir      string   `toml:"output_dir"`
	Lockfile       string   `toml:"lockfile"`
	EnvFile        string   `toml:"env_file"`
	Install        []string `toml:"install"`
	ManagedEnvVars []string `toml:"managed_env_vars"`
}

// Supported Vault auth methods.
const (
	AuthToken   = "token"
	AuthAppRole = "approle"
)
