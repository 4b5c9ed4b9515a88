package env

// DefaultManagedVars are the identifiers the hosting platform injects into
// every managed deployment.
var DefaultManagedVars = []string{
	"RAILWAY_PROJECT_ID",
	"RAILWAY_ENVIRONMENT",
	"RAILWAY_STATIC_URL",
}

// Managed reports whether s belongs to a managed deployment, i.e. whether any
// of vars is present. When vars is empty DefaultManagedVars is used.
func Managed(s Snapshot, vars []string) bool {
	if len(vars) == 0 {
		vars = DefaultManagedVars
	}

	for _, name := range vars {
		if s.Present(name) {
			return true
		}
	}

	return false
}
