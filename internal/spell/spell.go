// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package spell implements the spelling oracle: a frequency dictionary that
// recognizes known words and proposes the most likely correction for
// unknown ones by optimal string alignment distance.
package spell

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// DefaultMaxDistance is the largest edit distance considered for a correction.
const DefaultMaxDistance = 2

// Oracle answers spelling questions about single words.
type Oracle interface {
	// Known reports whether word is in the dictionary.
	Known(word string) bool
	// Correct returns the most likely spelling of word, or word itself when
	// it is known or nothing close enough exists.
	Correct(word string) string
}

// Checker is a dictionary-backed Oracle. It is safe for concurrent reads
// once constructed.
type Checker struct {
	freq        map[string]int
	byLen       map[int][]string
	maxDistance int
}

// New builds a Checker from word frequencies. Words are matched
// case-insensitively. A maxDistance of 0 or less uses DefaultMaxDistance.
func New(freq map[string]int, maxDistance int) *Checker {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	c := &Checker{
		freq:        make(map[string]int, len(freq)),
		byLen:       make(map[int][]string),
		maxDistance: maxDistance,
	}
	for w, n := range freq {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, seen := c.freq[w]; !seen {
			l := utf8.RuneCountInString(w)
			c.byLen[l] = append(c.byLen[l], w)
		}
		c.freq[w] += n
	}
	return c
}

// Len returns the number of dictionary words.
func (c *Checker) Len() int {
	return len(c.freq)
}

// Known reports whether word is in the dictionary.
func (c *Checker) Known(word string) bool {
	_, ok := c.freq[strings.ToLower(word)]
	return ok
}

// Correct returns word when it is known. Otherwise it returns the dictionary
// word with the smallest edit distance, preferring higher frequency and
// then lexical order on ties. Without a candidate within the maximum
// distance the input is returned unchanged.
func (c *Checker) Correct(word string) string {
	if word == "" || c.Known(word) {
		return word
	}
	lower := strings.ToLower(word)
	n := utf8.RuneCountInString(lower)

	best, bestDist, bestFreq := "", c.maxDistance+1, 0
	for l := n - c.maxDistance; l <= n+c.maxDistance; l++ {
		for _, cand := range c.byLen[l] {
			d := edlib.OSADamerauLevenshteinDistance(lower, cand)
			if d > c.maxDistance {
				continue
			}
			f := c.freq[cand]
			if d < bestDist || (d == bestDist && (f > bestFreq || (f == bestFreq && cand < best))) {
				best, bestDist, bestFreq = cand, d, f
			}
		}
	}
	if best == "" {
		return word
	}
	return best
}

// LoadFrequencyFile reads a dictionary with one entry per line, either
// "word" or "word count". Blank lines and lines starting with '#' are
// ignored.
func LoadFrequencyFile(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	freq := make(map[string]int)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			freq[fields[0]]++
		case 2:
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%s:%d: invalid count %q", path, lineNo, fields[1])
			}
			freq[fields[0]] += n
		default:
			return nil, fmt.Errorf("%s:%d: expected \"word\" or \"word count\"", path, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return freq, nil
}
