package source

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AgentTarik/receipt-feed/internal/transaction"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/v1/*.json
var schemaFS embed.FS

// ErrInvalidDocument is returned when the source is not a JSON array of objects.
var ErrInvalidDocument = errors.New("invalid operations document")

// ResolvePath makes path absolute. Relative paths are taken from baseDir, or
// from the working directory when baseDir is empty.
func ResolvePath(baseDir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
		baseDir = wd
	}
	return filepath.Abs(filepath.Join(baseDir, path))
}

type Loader struct {
	schema *jsonschema.Schema
}

func NewLoader() (*Loader, error) {
	data, err := schemaFS.ReadFile("schemas/v1/operations.v1.json")
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("operations.v1.json", bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile("operations.v1.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Loader{schema: s}, nil
}

// Load reads the whole document at path.
func (l *Loader) Load(path string) ([]transaction.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	records, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode parses a document. Numbers are kept as json.Number so that integer
// ids can be told apart from fractional values.
func (l *Loader) Decode(r io.Reader) ([]transaction.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := l.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	items := doc.([]any)
	out := make([]transaction.RawRecord, 0, len(items))
	for _, item := range items {
		out = append(out, transaction.RawRecord(item.(map[string]any)))
	}
	return out, nil
}
