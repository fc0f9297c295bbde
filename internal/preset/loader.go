package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError reports a preset file that could not be used at all: missing,
// unreadable, or not parseable as a document. Per-record problems are
// reported as warnings instead and do not produce a LoadError.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load presets %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Warning describes a preset record that was skipped during loading.
type Warning struct {
	Name string
	Err  error
}

func (w Warning) String() string {
	if w.Name == "" {
		return w.Err.Error()
	}
	return fmt.Sprintf("preset %s: %v", w.Name, w.Err)
}

type document struct {
	Presets []yaml.Node `yaml:"presets"`
}

// DefaultPath returns the preset file location used when no flag or
// environment override is present.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "muffin", "presets.yaml"), nil
}

// Load reads and decodes the preset file. Decoding is best-effort: records
// that fail to decode or validate are collected as warnings, and the rest of
// the file still loads. Duplicate names keep the first record.
func Load(path string) ([]Record, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes preset records from raw file contents.
func Parse(path string, data []byte) ([]Record, []Warning, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	records := make([]Record, 0, len(doc.Presets))
	warnings := []Warning(nil)
	seen := make(map[string]struct{}, len(doc.Presets))
	for i := range doc.Presets {
		var rec Record
		if err := doc.Presets[i].Decode(&rec); err != nil {
			warnings = append(warnings, Warning{Err: fmt.Errorf("entry %d: %w", i, err)})
			continue
		}
		if err := Validate(rec); err != nil {
			warnings = append(warnings, Warning{Name: rec.Name, Err: err})
			continue
		}
		key := strings.TrimSpace(rec.Name)
		if _, dup := seen[key]; dup {
			warnings = append(warnings, Warning{Name: rec.Name, Err: fmt.Errorf("duplicate preset name")})
			continue
		}
		seen[key] = struct{}{}
		records = append(records, Normalize(rec))
	}
	return records, warnings, nil
}
