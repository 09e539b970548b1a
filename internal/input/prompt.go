// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on w and reads answers line by line from r.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter returns a Prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Line writes prompt and returns the next input line without its line
// ending. A final line without a newline is returned normally; io.EOF is
// returned only once no input remains.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Collect asks whether the words come from a file and returns the raw text
// either typed on the console or flattened from the named file. Invalid
// answers are rejected and the question is asked again.
func (p *Prompter) Collect() (string, error) {
	for {
		answer, err := p.Line("Do you have a file of words? (yes or no (y/n)): ")
		if err != nil {
			return "", err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "n", "no":
			return p.Line("Enter your word: ")
		case "y", "yes":
			name, err := p.Line("Enter the file name: ")
			if err != nil {
				return "", err
			}
			return LoadFile(strings.TrimSpace(name))
		default:
			fmt.Fprintln(p.w, "Invalid response. Please enter 'y' or 'n'.")
		}
	}
}
