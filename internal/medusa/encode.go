package medusa

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// Output formats supported by Encode.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Encode renders r in the given format.
func Encode(r *Resolved, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding config as json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(r.wire())
		if err != nil {
			return nil, fmt.Errorf("encoding config as toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want %s or %s)", format, FormatJSON, FormatTOML)
	}
}

// wireResolved mirrors Resolved with modules in their encoded shape. TOML
// encoding does not consult MarshalJSON, so it goes through this form.
type wireResolved struct {
	Project ProjectConfig `toml:"project_config"`
	Admin   AdminConfig   `toml:"admin"`
	Modules []wireModule  `toml:"modules"`
	Plugins []Plugin      `toml:"plugins"`
}

func (r *Resolved) wire() wireResolved {
	modules := make([]wireModule, len(r.Modules))
	for i, m := range r.Modules {
		modules[i] = m.wire()
	}

	return wireResolved{
		Project: r.Project,
		Admin:   r.Admin,
		Modules: modules,
		Plugins: r.Plugins,
	}
}
