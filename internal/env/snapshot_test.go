package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshot_LookupDistinguishesEmpty(t *testing.T) {
	s := FromMap(map[string]string{"EMPTY": ""})

	v, ok := s.Lookup("EMPTY")
	if !ok || v != "" {
		t.Errorf("Lookup(EMPTY) = (%q, %v), want (\"\", true)", v, ok)
	}

	if _, ok := s.Lookup("MISSING"); ok {
		t.Error("Lookup(MISSING) ok = true, want false")
	}

	if s.Present("EMPTY") {
		t.Error("Present(EMPTY) = true, want false")
	}
}

func TestFromMap_CopiesInput(t *testing.T) {
	src := map[string]string{"KEY": "one"}
	s := FromMap(src)

	src["KEY"] = "two"

	if got := s.Get("KEY"); got != "one" {
		t.Errorf("Get(KEY) = %q, want %q", got, "one")
	}
}

func TestFromEnviron(t *testing.T) {
	s := FromEnviron([]string{"A=1", "B=x=y", "C=", "=skipped", "D"})

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"A", "1", true},
		{"B", "x=y", true},
		{"C", "", true},
		{"D", "", true},
		{"E", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Lookup(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestSnapshot_OverlayDoesNotMutate(t *testing.T) {
	base := FromMap(map[string]string{"A": "base", "B": "keep"})
	over := base.Overlay(map[string]string{"A": "over", "C": "new"})

	if base.Get("A") != "base" {
		t.Errorf("base A = %q, want %q", base.Get("A"), "base")
	}
	if _, ok := base.Lookup("C"); ok {
		t.Error("base gained C after Overlay")
	}

	if over.Get("A") != "over" || over.Get("B") != "keep" || over.Get("C") != "new" {
		t.Errorf("overlay = %v", over.Map())
	}
}

func TestSnapshot_GetOr(t *testing.T) {
	s := FromMap(map[string]string{"SET": "v", "EMPTY": ""})

	if got := s.GetOr("SET", "d"); got != "v" {
		t.Errorf("GetOr(SET) = %q, want %q", got, "v")
	}
	if got := s.GetOr("EMPTY", "d"); got != "d" {
		t.Errorf("GetOr(EMPTY) = %q, want %q", got, "d")
	}
	if got := s.GetOr("MISSING", "d"); got != "d" {
		t.Errorf("GetOr(MISSING) = %q, want %q", got, "d")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DATABASE_URL=postgres://local\n# comment\nJWT_SECRET=\"quoted\"\n"), 0644); err != nil {
		t.Fatalf("failed to write dotenv: %v", err)
	}

	vars, loaded, err := LoadDotenv(path)
	if err != nil {
		t.Fatalf("LoadDotenv() error = %v", err)
	}
	if !loaded {
		t.Fatal("LoadDotenv() loaded = false, want true")
	}
	if vars["DATABASE_URL"] != "postgres://local" {
		t.Errorf("DATABASE_URL = %q", vars["DATABASE_URL"])
	}
	if vars["JWT_SECRET"] != "quoted" {
		t.Errorf("JWT_SECRET = %q", vars["JWT_SECRET"])
	}
}

func TestLoadDotenv_Missing(t *testing.T) {
	vars, loaded, err := LoadDotenv(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadDotenv() error = %v, want nil", err)
	}
	if loaded || vars != nil {
		t.Errorf("LoadDotenv() = (%v, %v), want (nil, false)", vars, loaded)
	}
}

func TestLayer_Precedence(t *testing.T) {
	s := Layer(
		map[string]string{"A": "file", "B": "file"},
		nil,
		map[string]string{"A": "process"},
	)

	if s.Get("A") != "process" {
		t.Errorf("A = %q, want %q", s.Get("A"), "process")
	}
	if s.Get("B") != "file" {
		t.Errorf("B = %q, want %q", s.Get("B"), "file")
	}
}

func TestManaged(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		ids  []string
		want bool
	}{
		{"no identifiers", map[string]string{"PATH": "/bin"}, nil, false},
		{"project id", map[string]string{"RAILWAY_PROJECT_ID": "p"}, nil, true},
		{"environment", map[string]string{"RAILWAY_ENVIRONMENT": "production"}, nil, true},
		{"static url", map[string]string{"RAILWAY_STATIC_URL": "x.up.railway.app"}, nil, true},
		{"empty identifier", map[string]string{"RAILWAY_PROJECT_ID": ""}, nil, false},
		{"custom identifiers", map[string]string{"CI": "true"}, []string{"CI"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Managed(FromMap(tt.vars), tt.ids); got != tt.want {
				t.Errorf("Managed() = %v, want %v", got, tt.want)
			}
		})
	}
}
