package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/creachadair/tomledit"
	"github.com/creachadair/tomledit/parser"
	"github.com/creachadair/tomledit/transform"
	toml "github.com/pelletier/go-toml/v2"
)

const secretsSection = "secrets"

// WriteDefault writes the built-in configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// SetSecret maps envVar to vaultPath under [secrets], replacing any existing
// mapping for envVar. Comments, ordering and the rest of the file are left
// untouched. The section is created when missing.
func SetSecret(path, envVar, vaultPath string) error {
	if envVar == "" || vaultPath == "" {
		return fmt.Errorf("secret mapping needs both a variable name and a vault path")
	}
	if err := validateSecrets(map[string]string{envVar: vaultPath}); err != nil {
		return fmt.Errorf("secrets config: %w", err)
	}

	doc, err := readDoc(path)
	if err != nil {
		return err
	}

	value := parser.MustValue(fmt.Sprintf("%q", vaultPath))

	if entry := doc.First(secretsSection, envVar); entry != nil && entry.KeyValue != nil {
		entry.KeyValue.Value = value
		return writeDoc(path, doc)
	}

	section := findSection(doc, secretsSection)
	if section == nil {
		section = &tomledit.Section{Heading: &parser.Heading{Name: parser.Key{secretsSection}}}
		doc.Sections = append(doc.Sections, section)
	}

	transform.InsertMapping(section, &parser.KeyValue{
		Name:  parser.Key{envVar},
		Value: value,
	}, false)

	return writeDoc(path, doc)
}

// UnsetSecret removes the [secrets] mapping for envVar.
func UnsetSecret(path, envVar string) error {
	doc, err := readDoc(path)
	if err != nil {
		return err
	}

	entry := doc.First(secretsSection, envVar)
	if entry == nil {
		return fmt.Errorf("secret %q not found in [%s] of %s", envVar, secretsSection, path)
	}

	if !entry.Remove() {
		return fmt.Errorf("removing secret %q from %s", envVar, path)
	}

	return writeDoc(path, doc)
}

func readDoc(path string) (*tomledit.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := tomledit.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML in %s: %w", path, err)
	}

	return doc, nil
}

// writeDoc formats doc back into path, keeping the file's permissions.
func writeDoc(path string, doc *tomledit.Document) error {
	var buf bytes.Buffer
	var fmtr tomledit.Formatter
	if err := fmtr.Format(&buf, doc); err != nil {
		return fmt.Errorf("formatting TOML: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), info.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func findSection(doc *tomledit.Document, name string) *tomledit.Section {
	for _, e := range doc.Find(name) {
		if e.IsSection() {
			return e.Section
		}
	}
	return nil
}
