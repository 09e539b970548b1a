// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input collects raw words from the console or a delimited file and
// splits them into word tokens.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	// ErrInputFormat is matched by every FormatError.
	ErrInputFormat = errors.New("malformed input")

	// ErrNoWords is returned when the input contains no word tokens.
	ErrNoWords = errors.New("input contains no words")
)

// FormatError reports an unreadable or malformed input source.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("reading words from %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool {
	return target == ErrInputFormat
}

// wordRegex matches maximal runs of Unicode letters, combining marks,
// digits and underscores. RE2's \w and \b are ASCII-only, so they would
// split words such as "café".
var wordRegex = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Tokenize extracts word tokens from text in order. Repeated tokens keep
// their positions; punctuation and whitespace never become tokens.
func Tokenize(text string) []string {
	words := wordRegex.FindAllString(text, -1)
	if words == nil {
		return []string{}
	}
	return words
}

// Words tokenizes text and returns ErrNoWords when nothing remains.
func Words(text string) ([]string, error) {
	words := Tokenize(text)
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

// LoadFile reads a comma-delimited file and flattens every field of every
// row into a single space-joined string, ready for Tokenize. Rows may have
// differing field counts.
func LoadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &FormatError{Path: path, Err: err}
	}
	defer f.Close()

	text, err := ReadDelimited(f)
	if err != nil {
		return "", &FormatError{Path: path, Err: err}
	}
	return text, nil
}

// ReadDelimited flattens CSV records from r into one space-joined string.
func ReadDelimited(r io.Reader) (string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var fields []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		fields = append(fields, record...)
	}
	return strings.Join(fields, " "), nil
}
