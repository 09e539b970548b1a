// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expand turns a word sequence into search phrases. A Resolver
// builds a candidate set for every word from the spelling and synonym
// oracles; an Expander takes the Cartesian product of those sets in word
// order and returns each distinct phrase once.
package expand

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/pdiddy/synosearch/pkg/types"
)

// ErrCombinatorialExplosion is matched by every ExplosionError.
var ErrCombinatorialExplosion = errors.New("too many query combinations")

// ExplosionError reports an expansion whose product size exceeds the
// configured ceiling. It is raised before any query is built.
type ExplosionError struct {
	Count uint64
	Limit int
}

func (e *ExplosionError) Error() string {
	return fmt.Sprintf("expansion would produce %d queries, above the limit of %d: use fewer words or synonyms",
		e.Count, e.Limit)
}

func (e *ExplosionError) Is(target error) bool {
	return target == ErrCombinatorialExplosion
}

// Mapping holds the candidate set of every word seen in a batch. It is
// built once and only read afterwards.
type Mapping map[string]mapset.Set[string]

// Candidates returns the candidate set for word. A missing or empty entry
// falls back to a set holding just the word.
func (m Mapping) Candidates(word string) mapset.Set[string] {
	if set, ok := m[word]; ok && set != nil && set.Cardinality() > 0 {
		return set
	}
	return mapset.NewThreadUnsafeSet(word)
}

// Expander builds queries from a Mapping.
type Expander struct {
	// MaxQueries bounds the product size; 0 disables the check.
	MaxQueries int
	// FoldCase collapses queries differing only by letter case, keeping
	// the lexically smallest spelling.
	FoldCase bool
}

// NewExpander returns an Expander configured from cfg.
func NewExpander(cfg types.ExpansionConfig) Expander {
	return Expander{MaxQueries: cfg.MaxQueries, FoldCase: cfg.FoldCase}
}

// Count returns the number of selection tuples the product of words would
// produce, saturating at math.MaxUint64. An empty sequence counts zero.
func (e Expander) Count(words []string, m Mapping) uint64 {
	if len(words) == 0 {
		return 0
	}
	total := uint64(1)
	for _, w := range words {
		n := uint64(m.Candidates(w).Cardinality())
		if total > math.MaxUint64/n {
			return math.MaxUint64
		}
		total *= n
	}
	return total
}

// Expand returns every distinct query formed by choosing one candidate per
// position of words and joining the choices with single spaces, in
// lexical order. Positions keep their order and repeated words keep their
// positions. An empty sequence yields no queries. When the product would
// exceed MaxQueries an *ExplosionError is returned and nothing is built.
func (e Expander) Expand(words []string, m Mapping) ([]string, error) {
	if len(words) == 0 {
		return []string{}, nil
	}
	if count := e.Count(words, m); e.MaxQueries > 0 && count > uint64(e.MaxQueries) {
		return nil, &ExplosionError{Count: count, Limit: e.MaxQueries}
	}

	options := make([][]string, len(words))
	for i, w := range words {
		options[i] = sorted(m.Candidates(w))
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	folded := make(map[string]string)

	idx := make([]int, len(options))
	parts := make([]string, len(options))
	for {
		for i, j := range idx {
			parts[i] = options[i][j]
		}
		q := strings.Join(parts, " ")
		if e.FoldCase {
			key := strings.ToLower(q)
			if prev, ok := folded[key]; !ok || q < prev {
				folded[key] = q
			}
		} else {
			seen.Add(q)
		}

		// Advance the rightmost position that still has choices left.
		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(options[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	if e.FoldCase {
		for _, q := range folded {
			seen.Add(q)
		}
	}
	return sorted(seen), nil
}

// Expand returns the exact-string-deduplicated product of words without a
// ceiling. See Expander.Expand.
func Expand(words []string, m Mapping) []string {
	out, _ := Expander{}.Expand(words, m)
	return out
}

func sorted(set mapset.Set[string]) []string {
	out := set.ToSlice()
	sort.Strings(out)
	return out
}
