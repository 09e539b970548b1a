//go:build mage

// Package main contains Mage build targets for synosearch developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "synosearch"
	cmdPkg  = "./cmd/synosearch"

	secretsDir    = ".secrets"
	sampleLexicon = "testdata/thesaurus.yaml"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Init creates the .secrets/ placeholders and a sample thesaurus, leaving
// existing files alone.
func Init() error {
	if err := os.MkdirAll(secretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", secretsDir, err)
	}
	for _, name := range []string{"google-api-key", "google-cse-id"} {
		if err := writeIfMissing(filepath.Join(secretsDir, name), "", 0o600); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(sampleLexicon), 0o755); err != nil {
		return err
	}
	if err := writeIfMissing(sampleLexicon, sampleThesaurus, 0o644); err != nil {
		return err
	}
	fmt.Println("Fill in .secrets/google-api-key and .secrets/google-cse-id, then run: mage lexicon")
	return nil
}

// Lexicon builds the CLI and imports the sample thesaurus into lexicon.db.
func Lexicon() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "lexicon", "import", sampleLexicon)
}

func writeIfMissing(path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Println("   exists ", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println("   created", path)
	return nil
}

const sampleThesaurus = `# Synsets group interchangeable lemmas; verb classes group verbs that
# alternate in the same frames. Multiword lemmas use underscores.
synsets:
  - id: hello.n.01
    pos: n
    lemmas: [hello, hullo, hi, howdy, how-do-you-do]
  - id: world.n.01
    pos: n
    lemmas: [world, earth, globe]
  - id: search.v.01
    pos: v
    lemmas: [search, look_for, seek]
verb_classes:
  - id: search-35.2
    members: [search, hunt, probe, scour]
`

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree, skipping hidden and underscore directories,
// and counts non-blank lines in Go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
