package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotenv reads KEY=VALUE pairs from a dotenv file. A missing file is not
// an error: it returns a nil map and loaded=false.
func LoadDotenv(path string) (vars map[string]string, loaded bool, err error) {
	if path == "" {
		return nil, false, nil
	}

	vars, err = godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading dotenv file %s: %w", path, err)
	}

	return vars, true, nil
}

// Layer builds a Snapshot from the given layers, lowest precedence first.
// Nil layers are skipped.
func Layer(layers ...map[string]string) Snapshot {
	s := FromMap(nil)
	for _, l := range layers {
		if l == nil {
			continue
		}
		s = s.Overlay(l)
	}
	return s
}
