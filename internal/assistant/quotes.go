package assistant

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"gopkg.in/yaml.v3"

	platformstrings "taxportal/pkg/platform/strings"
)

//go:embed data/quotes.yaml
var defaultQuotesYAML []byte

// QuoteSource supplies the advisory line shown with an incomplete form.
type QuoteSource interface {
	Pick() string
}

// FixedQuote always returns itself. Useful where output must be stable.
type FixedQuote string

func (q FixedQuote) Pick() string { return string(q) }

// ErrNoQuotes is returned when a quote list is empty.
var ErrNoQuotes = errors.New("quote list is empty")

// RandomQuotes picks uniformly from a fixed list. The list is never mutated
// and math/rand/v2's package source is safe for concurrent use.
type RandomQuotes struct {
	quotes []string
}

// NewRandomQuotes trims the list, drops blank and repeated entries, and
// requires at least one quote.
func NewRandomQuotes(quotes []string) (*RandomQuotes, error) {
	kept := platformstrings.DedupeAndTrim(quotes)
	if len(kept) == 0 {
		return nil, ErrNoQuotes
	}
	return &RandomQuotes{quotes: kept}, nil
}

func (r *RandomQuotes) Pick() string {
	return r.quotes[rand.IntN(len(r.quotes))]
}

// Quotes returns the list in file order.
func (r *RandomQuotes) Quotes() []string {
	return slices.Clone(r.quotes)
}

// LoadQuotes parses a YAML document with a top-level `quotes` list.
func LoadQuotes(r io.Reader) (*RandomQuotes, error) {
	var file struct {
		Quotes []string `yaml:"quotes"`
	}
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return NewRandomQuotes(file.Quotes)
}

// DefaultQuotes returns the embedded quote list.
func DefaultQuotes() *RandomQuotes {
	q, err := LoadQuotes(bytes.NewReader(defaultQuotesYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded quotes: %v", err))
	}
	return q
}
