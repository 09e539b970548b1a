// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon is the synonym oracle. It keeps WordNet-style synsets and
// VerbNet-style verb classes in a SQLite database and answers, for a single
// word, which other strings may stand in for it.
package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kljensen/snowball/english"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/synosearch/pkg/types"
)

const defaultPath = "lexicon.db"

// Store manages the lexicon SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the lexicon database at cfg.Path, creating its
// parent directory and schema when missing.
func NewStore(cfg types.LexiconConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lexicon directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating lexicon schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS synsets (
			id TEXT PRIMARY KEY,
			pos TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS lemmas (
			synset_id TEXT NOT NULL REFERENCES synsets(id) ON DELETE CASCADE,
			lemma TEXT NOT NULL,
			key TEXT NOT NULL,
			PRIMARY KEY (synset_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lemmas_key ON lemmas(key)`,
		`CREATE TABLE IF NOT EXISTS verb_classes (
			id TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS verb_members (
			class_id TEXT NOT NULL REFERENCES verb_classes(id) ON DELETE CASCADE,
			verb TEXT NOT NULL,
			key TEXT NOT NULL,
			PRIMARY KEY (class_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verb_members_key ON verb_members(key)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// normalizeKey lowercases a lemma and turns WordNet underscores into spaces.
func normalizeKey(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(word, "_", " "))), " ")
}

// displayLemma keeps the lemma's case but spaces out multiword entries.
func displayLemma(lemma string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(lemma, "_", " ")), " ")
}

// Synonyms returns every lemma sharing a synset with word, the word's own
// lemma included, in lexical order. A word with no synsets is retried by
// its English stem; when that also fails the result is empty.
//
// The stem is matched exactly against stored lemmas, so the fallback only
// helps inflections whose stem is itself a lemma ("worlds" finds "world").
// Stems missing from the lexicon ("happi" for "happiness", "greet" for
// "greetings") find nothing.
func (s *Store) Synonyms(ctx context.Context, word string) ([]string, error) {
	return s.related(ctx, word, `SELECT DISTINCT l2.lemma FROM lemmas l1
		JOIN lemmas l2 ON l1.synset_id = l2.synset_id
		WHERE l1.key = ? ORDER BY l2.lemma`)
}

// VerbClasses returns the members of every verb class containing word, the
// word's own entry included, in lexical order. Stem fallback applies as in
// Synonyms.
func (s *Store) VerbClasses(ctx context.Context, word string) ([]string, error) {
	return s.related(ctx, word, `SELECT DISTINCT m2.verb FROM verb_members m1
		JOIN verb_members m2 ON m1.class_id = m2.class_id
		WHERE m1.key = ? ORDER BY m2.verb`)
}

func (s *Store) related(ctx context.Context, word, query string) ([]string, error) {
	key := normalizeKey(word)
	if key == "" {
		return nil, nil
	}
	out, err := s.queryStrings(ctx, query, key)
	if err != nil || len(out) > 0 {
		return out, err
	}
	if stem := english.Stem(key, false); stem != "" && stem != key {
		return s.queryStrings(ctx, query, stem)
	}
	return nil, nil
}

// Headwords returns every single-word lemma and verb class member. The
// spelling oracle uses them as its dictionary when no frequency list is
// configured.
func (s *Store) Headwords(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT key FROM lemmas WHERE instr(key, ' ') = 0
		UNION SELECT key FROM verb_members WHERE instr(key, ' ') = 0
		ORDER BY 1`)
}

func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lexicon: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning lexicon row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
