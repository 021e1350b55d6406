package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/pathfinder/internal/eligibility"
)

//go:embed scholarships.json
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema []byte

// Default returns the embedded demo catalog.
func Default() (*Catalog, error) {
	c, err := ParseJSON(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads a catalog from a .json or .xlsx file.
func LoadFile(path string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		c, err = ImportXLSX(path)
	case ".json":
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
		c, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	slog.Info("scholarship catalog loaded", "path", path, "records", c.Len())
	return c, nil
}

// ParseJSON validates and decodes a catalog document. Records that fail to
// decode are skipped with a warning.
func ParseJSON(data []byte) (*Catalog, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if obj, ok := doc.(map[string]any); ok {
		if obj["results"] == nil {
			return New(nil), nil
		}
		var wrapper struct {
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("decoding catalog: %w", err)
		}
		items = wrapper.Results
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return New(DecodeRecords(items)), nil
}

// DecodeRecords decodes raw scholarship records, skipping any that fail to
// decode. The result is never nil.
func DecodeRecords(items []json.RawMessage) []eligibility.Scholarship {
	records := make([]eligibility.Scholarship, 0, len(items))
	for i, item := range items {
		var s eligibility.Scholarship
		if err := json.Unmarshal(item, &s); err != nil {
			slog.Warn("skipping invalid scholarship record", "index", i, "error", err)
			continue
		}
		records = append(records, s)
	}
	return records
}

func validate(doc any) error {
	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
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
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// WriteJSON writes the catalog as {"results": [...]}.
func (c *Catalog) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Results []eligibility.Scholarship `json:"results"`
	}{c.records}); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}
