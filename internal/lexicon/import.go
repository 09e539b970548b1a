// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// Thesaurus is the on-disk YAML form of lexicon data.
//
//	synsets:
//	  - id: hello.n.01
//	    pos: n
//	    lemmas: [hello, hullo, hi, howdy]
//	verb_classes:
//	  - id: run-51.3.2
//	    members: [run, jog, sprint]
type Thesaurus struct {
	Synsets     []Synset    `yaml:"synsets"`
	VerbClasses []VerbClass `yaml:"verb_classes"`
}

// Synset is a group of interchangeable lemmas.
type Synset struct {
	ID     string   `yaml:"id" json:"id"`
	POS    string   `yaml:"pos,omitempty" json:"pos,omitempty"`
	Lemmas []string `yaml:"lemmas" json:"lemmas"`
}

// VerbClass is a group of verbs sharing syntactic and semantic behavior.
type VerbClass struct {
	ID      string   `yaml:"id" json:"id"`
	Members []string `yaml:"members" json:"members"`
}

// ImportSummary counts what an import wrote.
type ImportSummary struct {
	Synsets     int
	Lemmas      int
	VerbClasses int
	Members     int
}

// ImportFile loads a YAML thesaurus file into the store.
func (s *Store) ImportFile(ctx context.Context, path string) (ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("opening thesaurus: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, f)
}

// Import decodes a YAML thesaurus from r and writes it in one transaction.
// Re-importing a synset or verb class replaces its previous members.
func (s *Store) Import(ctx context.Context, r io.Reader) (ImportSummary, error) {
	var th Thesaurus
	if err := yaml.NewDecoder(r).Decode(&th); err != nil && err != io.EOF {
		return ImportSummary{}, fmt.Errorf("parsing thesaurus: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	var sum ImportSummary
	for _, syn := range th.Synsets {
		n, err := importSynset(ctx, tx, syn)
		if err != nil {
			return ImportSummary{}, err
		}
		sum.Synsets++
		sum.Lemmas += n
	}
	for _, vc := range th.VerbClasses {
		n, err := importVerbClass(ctx, tx, vc)
		if err != nil {
			return ImportSummary{}, err
		}
		sum.VerbClasses++
		sum.Members += n
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}
	return sum, nil
}

func importSynset(ctx context.Context, tx *sql.Tx, syn Synset) (int, error) {
	if syn.ID == "" {
		return 0, fmt.Errorf("synset without id (lemmas %v)", syn.Lemmas)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO synsets (id, pos) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET pos = excluded.pos`, syn.ID, syn.POS); err != nil {
		return 0, fmt.Errorf("writing synset %s: %w", syn.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM lemmas WHERE synset_id = ?`, syn.ID); err != nil {
		return 0, fmt.Errorf("clearing synset %s: %w", syn.ID, err)
	}
	return insertMembers(ctx, tx, `INSERT OR IGNORE INTO lemmas (synset_id, lemma, key) VALUES (?, ?, ?)`, syn.ID, syn.Lemmas)
}

func importVerbClass(ctx context.Context, tx *sql.Tx, vc VerbClass) (int, error) {
	if vc.ID == "" {
		return 0, fmt.Errorf("verb class without id (members %v)", vc.Members)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO verb_classes (id) VALUES (?)`, vc.ID); err != nil {
		return 0, fmt.Errorf("writing verb class %s: %w", vc.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM verb_members WHERE class_id = ?`, vc.ID); err != nil {
		return 0, fmt.Errorf("clearing verb class %s: %w", vc.ID, err)
	}
	return insertMembers(ctx, tx, `INSERT OR IGNORE INTO verb_members (class_id, verb, key) VALUES (?, ?, ?)`, vc.ID, vc.Members)
}

func insertMembers(ctx context.Context, tx *sql.Tx, stmt, owner string, members []string) (int, error) {
	n := 0
	for _, m := range members {
		key := normalizeKey(m)
		if key == "" {
			continue
		}
		res, err := tx.ExecContext(ctx, stmt, owner, displayLemma(m), key)
		if err != nil {
			return 0, fmt.Errorf("writing %q into %s: %w", m, owner, err)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			n++
		}
	}
	return n, nil
}

// Entry describes everything the lexicon holds for one word.
type Entry struct {
	Word        string      `json:"word"`
	Synsets     []Synset    `json:"synsets"`
	VerbClasses []VerbClass `json:"verb_classes"`
}

// Lookup returns the synsets and verb classes that contain word, with
// their full membership. Unlike Synonyms it does not fall back to stems.
func (s *Store) Lookup(ctx context.Context, word string) (Entry, error) {
	e := Entry{Word: word}
	key := normalizeKey(word)

	ids, err := s.queryStrings(ctx, `SELECT DISTINCT synset_id FROM lemmas WHERE key = ? ORDER BY synset_id`, key)
	if err != nil {
		return e, err
	}
	for _, id := range ids {
		syn := Synset{ID: id}
		if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(pos, '') FROM synsets WHERE id = ?`, id).Scan(&syn.POS); err != nil {
			return e, fmt.Errorf("reading synset %s: %w", id, err)
		}
		if syn.Lemmas, err = s.queryStrings(ctx, `SELECT lemma FROM lemmas WHERE synset_id = ? ORDER BY lemma`, id); err != nil {
			return e, err
		}
		e.Synsets = append(e.Synsets, syn)
	}

	classes, err := s.queryStrings(ctx, `SELECT DISTINCT class_id FROM verb_members WHERE key = ? ORDER BY class_id`, key)
	if err != nil {
		return e, err
	}
	for _, id := range classes {
		vc := VerbClass{ID: id}
		if vc.Members, err = s.queryStrings(ctx, `SELECT verb FROM verb_members WHERE class_id = ? ORDER BY verb`, id); err != nil {
			return e, err
		}
		e.VerbClasses = append(e.VerbClasses, vc)
	}
	return e, nil
}
