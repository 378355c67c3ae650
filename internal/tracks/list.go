package tracks

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/lofi.txt
var defaultLists embed.FS

// ErrEmptyList is returned when a track list has no playable entries.
var ErrEmptyList = errors.New("track list has no entries")

// List is a parsed track list: a base URL and the entries below it.
//
// Format: the first non-comment line is the base URL. Every following
// line is a path relative to it, optionally "path|Display Name" to give
// the track a custom name. Blank lines and lines starting with '#' are
// ignored. An entry that is itself a full URL bypasses the base.
type List struct {
	BaseURL string
	entries []listEntry
}

type listEntry struct {
	path   string
	name   string // custom display name, empty if none
}

// LoadList reads a track list from disk, or the embedded default list
// when path is empty.
func LoadList(path string) (*List, error) {
	if path == "" {
		f, err := defaultLists.Open("data/lofi.txt")
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseList(f)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track list: %w", err)
	}
	defer f.Close()

	list, err := ParseList(f)
	if err != nil {
		return nil, fmt.Errorf("parse track list %s: %w", path, err)
	}
	return list, nil
}

// ParseList parses a track list from a reader.
func ParseList(r io.Reader) (*List, error) {
	var list List

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if list.BaseURL == "" {
			list.BaseURL = line
			if !strings.HasSuffix(list.BaseURL, "/") {
				list.BaseURL += "/"
			}
			continue
		}

		entry := listEntry{path: line}
		if p, name, found := strings.Cut(line, "|"); found {
			entry.path = strings.TrimSpace(p)
			entry.name = strings.TrimSpace(name)
		}
		list.entries = append(list.entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(list.entries) == 0 {
		return nil, ErrEmptyList
	}
	return &list, nil
}

// Len returns the number of entries in the list.
func (l *List) Len() int {
	return len(l.entries)
}

// candidate builds the Candidate for the entry at index i.
func (l *List) candidate(i int) Candidate {
	e := l.entries[i]

	fullURL := e.path
	if !strings.Contains(e.path, "://") {
		fullURL = l.BaseURL + e.path
	}

	c := Candidate{
		Path: e.path,
		URL:  fullURL,
	}
	if e.name != "" {
		c.DisplayName = e.name
		c.Custom = true
	} else {
		c.DisplayName = displayName(e.path)
	}
	return c
}
