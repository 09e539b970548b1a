// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/pdiddy/synosearch/internal/spell"
	"github.com/pdiddy/synosearch/pkg/types"
)

// SynonymOracle supplies substitute strings for a word. Both lookups may
// return nothing for unknown words; errors are reserved for I/O failures.
type SynonymOracle interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
	VerbClasses(ctx context.Context, word string) ([]string, error)
}

// Correction pairs an input word with the form used for expansion.
type Correction struct {
	Original  string
	Corrected string
}

// Changed reports whether the spelling oracle replaced the word.
func (c Correction) Changed() bool {
	return c.Original != c.Corrected
}

// Resolver builds candidate sets from injected oracles. Either oracle may
// be nil: without a speller no word is corrected, without a synonym oracle
// every word resolves to itself.
type Resolver struct {
	speller      spell.Oracle
	synonyms     SynonymOracle
	keepOriginal bool
	logger       *log.Logger
	notices      io.Writer
}

// NewResolver returns a Resolver over the given oracles.
func NewResolver(speller spell.Oracle, synonyms SynonymOracle, cfg types.ExpansionConfig, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		speller:      speller,
		synonyms:     synonyms,
		keepOriginal: cfg.KeepOriginal,
		logger:       logger,
	}
}

// SetNotices sends correction notices to w, next to the search output,
// instead of the logger.
func (r *Resolver) SetNotices(w io.Writer) {
	r.notices = w
}

func (r *Resolver) notice(original, corrected string) {
	msg := fmt.Sprintf("Correcting '%s' to '%s'", original, corrected)
	if r.notices == nil {
		r.logger.Info(msg)
		return
	}
	fmt.Fprintln(r.notices, msg)
}

// Correct applies the spelling oracle to every word in order. Known words
// stay unchanged; unknown words take the oracle's top suggestion, or stay
// unchanged when it has none.
func (r *Resolver) Correct(words []string) []Correction {
	out := make([]Correction, len(words))
	for i, w := range words {
		out[i] = Correction{Original: w, Corrected: w}
		if r.speller == nil || r.speller.Known(w) {
			continue
		}
		if c := r.speller.Correct(w); c != "" && c != w {
			out[i].Corrected = c
			r.notice(w, c)
		}
	}
	return out
}

// Resolve returns the candidate set for word: the word itself, its
// synonyms and its verb class alternatives. A word the oracle does not
// know resolves to just itself.
func (r *Resolver) Resolve(ctx context.Context, word string) (mapset.Set[string], error) {
	set := mapset.NewThreadUnsafeSet(word)
	if r.synonyms == nil {
		return set, nil
	}

	syns, err := r.synonyms.Synonyms(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("looking up synonyms of %q: %w", word, err)
	}
	verbs, err := r.synonyms.VerbClasses(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("looking up verb classes of %q: %w", word, err)
	}
	for _, s := range append(syns, verbs...) {
		if s != "" {
			set.Add(s)
		}
	}
	r.logger.Debug("resolved candidates", "word", word, "count", set.Cardinality())
	return set, nil
}

// BuildMapping resolves every original and corrected word of a batch and
// returns the mapping together with the word sequence to expand (the
// corrected forms, in input order). With keep-original enabled a corrected
// position also offers the candidates of the word actually typed.
func (r *Resolver) BuildMapping(ctx context.Context, corrections []Correction) (Mapping, []string, error) {
	m := make(Mapping)
	words := make([]string, len(corrections))
	for i, c := range corrections {
		words[i] = c.Corrected
		for _, w := range []string{c.Original, c.Corrected} {
			if _, done := m[w]; done {
				continue
			}
			set, err := r.Resolve(ctx, w)
			if err != nil {
				return nil, nil, err
			}
			m[w] = set
		}
	}

	if r.keepOriginal {
		merged := make(map[string]mapset.Set[string])
		for _, c := range corrections {
			if !c.Changed() {
				continue
			}
			base, ok := merged[c.Corrected]
			if !ok {
				base = m[c.Corrected].Clone()
				merged[c.Corrected] = base
			}
			base.Append(m[c.Original].ToSlice()...)
		}
		for w, set := range merged {
			m[w] = set
		}
	}
	return m, words, nil
}
