// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/synosearch/pkg/types"
)

// ReportOutcome writes one query block: the query line, each URL on its
// own line, then a blank separator line.
func ReportOutcome(w io.Writer, o types.Outcome) {
	fmt.Fprintf(w, "Search Query: %s\n", o.Query)
	for _, u := range o.URLs {
		fmt.Fprintln(w, u)
	}
	fmt.Fprintln(w)
}

// Report writes a block per outcome in the given order.
func Report(w io.Writer, outcomes []types.Outcome) {
	for _, o := range outcomes {
		ReportOutcome(w, o)
	}
}

// ReportJSON writes outcomes as indented JSON.
func ReportJSON(w io.Writer, outcomes []types.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomes)
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Queries int
	Links   int
	Failed  int
}

// Summarize tallies outcomes.
func Summarize(outcomes []types.Outcome) Summary {
	s := Summary{Queries: len(outcomes)}
	for _, o := range outcomes {
		s.Links += len(o.URLs)
		if o.Failed() {
			s.Failed++
		}
	}
	return s
}
