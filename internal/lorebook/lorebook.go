package lorebook

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is a single World Info entry.
type Entry struct {
	UID          int      `json:"uid"`
	Key          []string `json:"key"`
	KeySecondary []string `json:"keysecondary"`
	Comment      string   `json:"comment"`
	Content      string   `json:"content"`
	Order        int      `json:"order"`
	Disable      bool     `json:"disable"`
	Constant     bool     `json:"constant"`
}

// Title returns the entry's display name: its comment, or its first key.
func (e Entry) Title() string {
	if e.Comment != "" {
		return e.Comment
	}
	if len(e.Key) > 0 {
		return e.Key[0]
	}
	return fmt.Sprintf("entry #%d", e.UID)
}

// Field resolves a field by its JSON name. Unknown names report false.
func (e Entry) Field(name string) (any, bool) {
	switch name {
	case "uid":
		return e.UID, true
	case "key", "keys":
		return e.Key, true
	case "keysecondary":
		return e.KeySecondary, true
	case "comment", "title":
		return e.Comment, true
	case "content":
		return e.Content, true
	case "order":
		return e.Order, true
	}
	return nil, false
}

// Kind describes what a Book was parsed from.
type Kind string

const (
	KindWorldInfo Kind = "world-info"
	KindWordList  Kind = "word-list"
)

// Book is a loaded set of candidates: either World Info entries or words.
type Book struct {
	Name    string
	Kind    Kind
	Entries []Entry
	Words   []string
}

// Load reads and parses the file at path.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, data)
}

// Parse detects the format of data and parses it. Accepted formats are a
// World Info export ({"entries": {...}}), a JSON array of entries, a JSON
// array of strings, and plain text with one candidate per line.
func Parse(name string, data []byte) (*Book, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Book{Name: name, Kind: KindWordList}, nil
	}

	switch trimmed[0] {
	case '{':
		return parseExport(name, trimmed)
	case '[':
		return parseArray(name, trimmed)
	}
	return parseLines(name, trimmed), nil
}

func parseExport(name string, data []byte) (*Book, error) {
	var export struct {
		Name    string           `json:"name"`
		Entries map[string]Entry `json:"entries"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing world info %s: %w", name, err)
	}
	if export.Name != "" {
		name = export.Name
	}

	entries := make([]Entry, 0, len(export.Entries))
	for _, e := range export.Entries {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return &Book{Name: name, Kind: KindWorldInfo, Entries: entries}, nil
}

func parseArray(name string, data []byte) (*Book, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	// An array is a word list when its first element is a string.
	if len(raw) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw[0]), []byte(`"`)) {
		var words []string
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("parsing word list %s: %w", name, err)
		}
		return &Book{Name: name, Kind: KindWordList, Words: words}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing entries %s: %w", name, err)
	}
	sortEntries(entries)
	return &Book{Name: name, Kind: KindWorldInfo, Entries: entries}, nil
}

func parseLines(name string, data []byte) *Book {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return &Book{Name: name, Kind: KindWordList, Words: words}
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UID < entries[j].UID
	})
}

// Len returns the number of candidates in the book, disabled entries included.
func (b *Book) Len() int {
	if b.Kind == KindWordList {
		return len(b.Words)
	}
	return len(b.Entries)
}

// Candidates returns the book's items in a form the fuzzy matcher accepts.
// Disabled entries are left out unless includeDisabled is set.
func (b *Book) Candidates(includeDisabled bool) []any {
	if b.Kind == KindWordList {
		out := make([]any, len(b.Words))
		for i, w := range b.Words {
			out[i] = w
		}
		return out
	}

	out := make([]any, 0, len(b.Entries))
	for _, e := range b.Entries {
		if e.Disable && !includeDisabled {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Label returns a one-line label for a candidate produced by Candidates.
func Label(item any) string {
	switch v := item.(type) {
	case Entry:
		return v.Title()
	case string:
		return v
	}
	return fmt.Sprint(item)
}

// Detail returns secondary text for a candidate: an entry's keywords.
func Detail(item any) string {
	if e, ok := item.(Entry); ok {
		return strings.Join(e.Key, ", ")
	}
	return ""
}
