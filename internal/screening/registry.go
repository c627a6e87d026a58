package screening

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"taxportal/internal/form"
)

//go:embed data/fraud_registry.yaml
var defaultRegistryYAML []byte

// ErrInvalidRecord indicates a watch-list entry failed validation on load.
var ErrInvalidRecord = errors.New("invalid fraud record")

// Registry is the static, ordered set of watch-listed identities. It is loaded
// once and never mutated.
type Registry struct {
	records []Record
}

type registryFile struct {
	Records []Record `yaml:"records"`
}

// NewRegistry validates and stores records in the given order.
func NewRegistry(records []Record) (*Registry, error) {
	for i, rec := range records {
		if err := validateRecord(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return &Registry{records: slices.Clone(records)}, nil
}

// LoadRegistry parses a YAML watch-list document.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var file registryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode fraud registry: %w", err)
	}
	return NewRegistry(file.Records)
}

// DefaultRegistry returns the embedded synthetic watch-list.
func DefaultRegistry() *Registry {
	reg, err := LoadRegistry(bytes.NewReader(defaultRegistryYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded fraud registry: %v", err))
	}
	return reg
}

// Records returns the watch-list in registry order.
func (r *Registry) Records() []Record {
	return slices.Clone(r.records)
}

// Len returns the number of records.
func (r *Registry) Len() int { return len(r.records) }

func validateRecord(rec Record) error {
	if strings.TrimSpace(rec.DisplayName) == "" {
		return fmt.Errorf("empty display name: %w", ErrInvalidRecord)
	}
	if _, err := form.ParseTaxID(rec.IdentifierCode); err != nil {
		return fmt.Errorf("identifier %q: %w: %w", rec.IdentifierCode, ErrInvalidRecord, err)
	}
	if !rec.Reason.IsValid() {
		return fmt.Errorf("unknown reason %q: %w", rec.Reason, ErrInvalidRecord)
	}
	return nil
}
