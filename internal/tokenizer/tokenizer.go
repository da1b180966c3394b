// Package tokenizer counts tokens with the tiktoken BPE encodings. The
// original deployment logged cl100k_base counts for every request, and the
// audit schema depends on those numbers being comparable over time, so the
// encoding name is configuration, not a constant.
package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Counter is the narrow interface the service layer consumes.
type Counter interface {
	// Count returns the number of tokens in text under the configured
	// encoding. It is pure; the only failure mode is an unavailable
	// encoding (e.g. the BPE ranks could not be loaded).
	Count(text string) (int, error)
}

// Tokenizer is a lazily-initialized tiktoken encoding. Safe for concurrent
// use; the encoding is resolved once on first Count.
type Tokenizer struct {
	encoding string

	once sync.Once
	tke  *tiktoken.Tiktoken
	err  error
}

// New returns a Tokenizer for the named tiktoken encoding (e.g.
// "cl100k_base"). The encoding is not loaded until first use so that
// construction never blocks on rank downloads.
func New(encoding string) *Tokenizer {
	return &Tokenizer{encoding: encoding}
}

// Encoding returns the configured encoding name.
func (t *Tokenizer) Encoding() string { return t.encoding }

// Count implements Counter.
func (t *Tokenizer) Count(text string) (int, error) {
	t.once.Do(func() {
		t.tke, t.err = tiktoken.GetEncoding(t.encoding)
	})
	if t.err != nil {
		return 0, fmt.Errorf("load encoding %q: %w", t.encoding, t.err)
	}
	return len(t.tke.Encode(text, nil, nil)), nil
}
