package quiz

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBank []byte

//go:embed bank.schema.json
var bankSchema []byte

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// Default returns the embedded question bank.
func Default() (*Bank, error) {
	b, err := Load(defaultBank)
	if err != nil {
		return nil, fmt.Errorf("loading embedded bank: %w", err)
	}
	return b, nil
}

// LoadFile reads a YAML (or JSON) question bank from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank: %w", err)
	}
	b, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("question bank loaded", "path", path, "questions", b.Len())
	return b, nil
}

// Load parses and validates a question bank document.
func Load(data []byte) (*Bank, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding question bank: %w", err)
	}
	return NewBank(f.Questions)
}

// Validate checks a decoded bank document against the bank JSON schema.
func Validate(doc map[string]any) error {
	schemaLoader := gojsonschema.NewBytesLoader(bankSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("question bank validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
