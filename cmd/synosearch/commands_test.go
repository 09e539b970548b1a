// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/synosearch/internal/expand"
	"github.com/pdiddy/synosearch/internal/search"
	"github.com/pdiddy/synosearch/pkg/types"
)

// --- test doubles ---

type stubProvider struct {
	queries []string
	sleeps  int
	onCall  func(query string)
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, query string, _ int) ([]types.SearchResult, error) {
	s.queries = append(s.queries, query)
	if s.onCall != nil {
		s.onCall(query)
	}
	return []types.SearchResult{{URL: linkFor(query)}}, nil
}

func linkFor(query string) string {
	return "https://example.com/" + strings.ReplaceAll(query, " ", "-")
}

func block(query string) string {
	return "Search Query: " + query + "\n" + linkFor(query) + "\n\n"
}

// stubSearch routes provider construction to a stub, removes politeness
// waits, points the lexicon at a seeded temp database and silences logs.
func stubSearch(t *testing.T) *stubProvider {
	t.Helper()
	p := &stubProvider{}

	oldProvider, oldSleep := newProvider, dispatchSleep
	newProvider = func(types.SearchConfig, *http.Client) (search.Provider, error) { return p, nil }
	dispatchSleep = func(ctx context.Context, _ time.Duration) error {
		p.sleeps++
		return ctx.Err()
	}
	viper.Set("lexicon.path", testLexicon(t))
	logger.SetOutput(io.Discard)

	t.Cleanup(func() {
		newProvider, dispatchSleep = oldProvider, oldSleep
		viper.Set("lexicon.path", defaultLexiconPath)
		logger.SetOutput(os.Stderr)
	})
	return p
}

// prepare wires stdin, stdout and ctx into cmd for one test.
func prepare(t *testing.T, cmd *cobra.Command, ctx context.Context, stdin string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetContext(ctx)
	t.Cleanup(func() {
		cmd.SetIn(nil)
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return &out
}

func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	f := cmd.Flags().Lookup(name)
	require.NotNil(t, f, "flag --%s", name)
	old := f.Value.String()
	require.NoError(t, cmd.Flags().Set(name, value))
	t.Cleanup(func() {
		_ = f.Value.Set(old)
		f.Changed = false
	})
}

var helloWorldQueries = []string{
	"hello earth", "hello world",
	"hi earth", "hi world",
	"howdy earth", "howdy world",
}

// --- search ---

func TestSearchCommandPrintsBlocksIncrementally(t *testing.T) {
	p := stubSearch(t)
	out := prepare(t, searchCmd, context.Background(), "")

	var printedBefore []int
	p.onCall = func(string) { printedBefore = append(printedBefore, strings.Count(out.String(), "Search Query: ")) }

	require.NoError(t, runSearch(searchCmd, []string{"hello", "world"}))

	assert.Equal(t, helloWorldQueries, p.queries)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, printedBefore, "each block is printed before the next search")
	assert.Equal(t, 5, p.sleeps, "N-1 pauses")

	var want strings.Builder
	for _, q := range helloWorldQueries {
		want.WriteString(block(q))
	}
	assert.Equal(t, want.String(), out.String())
}

func TestSearchCommandJSON(t *testing.T) {
	stubSearch(t)
	out := prepare(t, searchCmd, context.Background(), "")
	setFlag(t, searchCmd, "json", "true")

	require.NoError(t, runSearch(searchCmd, []string{"hello", "world"}))

	var outcomes []types.Outcome
	require.NoError(t, json.Unmarshal(out.Bytes(), &outcomes), out.String())
	require.Len(t, outcomes, len(helloWorldQueries))
	assert.Equal(t, "hello earth", outcomes[0].Query)
	assert.Equal(t, []string{linkFor("hello earth")}, outcomes[0].URLs)
	assert.NotContains(t, out.String(), "Search Query:")
}

func TestSearchCommandInterruptedKeepsResults(t *testing.T) {
	p := stubSearch(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := prepare(t, searchCmd, ctx, "")

	p.onCall = func(q string) {
		if len(p.queries) == 2 {
			cancel()
		}
	}

	require.NoError(t, runSearch(searchCmd, []string{"hello", "world"}), "an interrupted batch is not an error")
	assert.Len(t, p.queries, 2)
	assert.Equal(t, block("hello earth")+block("hello world"), out.String())
}

func TestSearchCommandReadsFile(t *testing.T) {
	p := stubSearch(t)
	prepare(t, searchCmd, context.Background(), "")

	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("hello,world\n"), 0o644))
	setFlag(t, searchCmd, "file", path)

	require.NoError(t, runSearch(searchCmd, nil))
	assert.Equal(t, helloWorldQueries, p.queries)
}

func TestSearchCommandRefusesExplosion(t *testing.T) {
	p := stubSearch(t)
	prepare(t, searchCmd, context.Background(), "")
	setFlag(t, searchCmd, "max-queries", "2")

	err := runSearch(searchCmd, []string{"hello", "world"})
	assert.ErrorIs(t, err, expand.ErrCombinatorialExplosion)
	assert.Empty(t, p.queries, "nothing is searched")
}

// --- expand ---

func TestExpandCommandListsQueries(t *testing.T) {
	p := stubSearch(t)
	out := prepare(t, expandCmd, context.Background(), "")

	require.NoError(t, runExpand(expandCmd, []string{"hello", "world"}))
	assert.Equal(t, strings.Join(helloWorldQueries, "\n")+"\n\n6 queries\n", out.String())
	assert.Empty(t, p.queries)
}

// --- interactive ---

const banner = "Exit loop by typing 'exit()' or wait for End of File\n"

func TestInteractiveStopsAtExitSentinel(t *testing.T) {
	p := stubSearch(t)
	out := prepare(t, interactiveCmd, context.Background(), "hello world\n  exit()  \nnever searched\n")

	require.NoError(t, runInteractive(interactiveCmd, nil))

	assert.Equal(t, []string{"hello world"}, p.queries, "lines are searched as typed")
	assert.Equal(t, banner+
		"Enter your search: "+block("hello world")+
		"Enter your search: Program terminating...\n", out.String())
}

func TestInteractiveStopsAtEOF(t *testing.T) {
	p := stubSearch(t)
	out := prepare(t, interactiveCmd, context.Background(), "first\n\nsecond")

	require.NoError(t, runInteractive(interactiveCmd, nil))

	assert.Equal(t, []string{"first", "second"}, p.queries, "blank lines are skipped")
	assert.Equal(t, 1, p.sleeps, "consecutive lines are still paced")
	assert.True(t, strings.HasPrefix(out.String(), banner))
	assert.True(t, strings.HasSuffix(out.String(), "Enter your search: \nProgram terminating...\n"), out.String())
}

func TestInteractiveExpandsLines(t *testing.T) {
	p := stubSearch(t)
	out := prepare(t, interactiveCmd, context.Background(), "hello\nexit()\n")
	setFlag(t, interactiveCmd, "expand", "true")

	require.NoError(t, runInteractive(interactiveCmd, nil))

	assert.Equal(t, []string{"hello", "hi", "howdy"}, p.queries)
	assert.Contains(t, out.String(), block("howdy"))
	assert.True(t, strings.HasSuffix(out.String(), "Program terminating...\n"))
}

func TestInteractiveSkipsLinesThatExpandToNothing(t *testing.T) {
	p := stubSearch(t)
	out := prepare(t, interactiveCmd, context.Background(), "...\nhello\n")
	setFlag(t, interactiveCmd, "expand", "true")

	require.NoError(t, runInteractive(interactiveCmd, nil))

	assert.Equal(t, []string{"hello", "hi", "howdy"}, p.queries)
	assert.Contains(t, out.String(), "Program terminating...")
}
