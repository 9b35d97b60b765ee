package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeFloat  KeyType = "float"
	KeyTypeBool   KeyType = "bool"
	KeyTypeList   KeyType = "list"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is a human-readable description shown in `lorefind config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"search.threshold": {
		Type:       KeyTypeFloat,
		Desc:       "Highest score (0-1) a candidate may have and still match",
		DefaultStr: strconv.FormatFloat(DefaultThreshold, 'g', -1, 64),
		get: func(cfg *Config) string {
			return strconv.FormatFloat(cfg.Search.Threshold, 'g', -1, 64)
		},
		set: func(cfg *Config, v string) error {
			t, err := ParseThreshold(v)
			if err != nil {
				return err
			}
			cfg.Search.Threshold = t
			return nil
		},
		unset: func(cfg *Config) { cfg.Search.Threshold = DefaultThreshold },
	},
	"search.keys": {
		Type:       KeyTypeList,
		Desc:       "Comma-separated entry fields to search (empty = whole entry)",
		DefaultStr: strings.Join(DefaultKeys, ","),
		get:        func(cfg *Config) string { return strings.Join(cfg.Search.Keys, ",") },
		set: func(cfg *Config, v string) error {
			cfg.Search.Keys = ParseList(v)
			return nil
		},
		unset: func(cfg *Config) { cfg.Search.Keys = append([]string(nil), DefaultKeys...) },
	},
	"search.limit": {
		Type:       KeyTypeInt,
		Desc:       "Maximum results printed by `lorefind search` (0 = all)",
		DefaultStr: strconv.Itoa(DefaultLimit),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Search.Limit) },
		set: func(cfg *Config, v string) error {
			n, err := parseNonNegative(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for search.limit: %w", v, err)
			}
			cfg.Search.Limit = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Search.Limit = DefaultLimit },
	},
	"history.enabled": {
		Type:       KeyTypeBool,
		Desc:       "Record searches in the local history",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.History.IsEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for history.enabled: %w", v, err)
			}
			cfg.History.Enabled = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.History.Enabled = BoolPtr(true) },
	},
	"history.max_entries": {
		Type:       KeyTypeInt,
		Desc:       "Searches kept in the history before the oldest are pruned",
		DefaultStr: strconv.Itoa(DefaultHistoryMaxEntries),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.History.MaxEntries) },
		set: func(cfg *Config, v string) error {
			n, err := parseNonNegative(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for history.max_entries: %w", v, err)
			}
			cfg.History.MaxEntries = n
			return nil
		},
		unset: func(cfg *Config) { cfg.History.MaxEntries = DefaultHistoryMaxEntries },
	},
	"display.render_markdown": {
		Type:       KeyTypeBool,
		Desc:       "Render entry content as markdown in a terminal",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.Display.MarkdownEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for display.render_markdown: %w", v, err)
			}
			cfg.Display.RenderMarkdown = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.RenderMarkdown = BoolPtr(true) },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}

// ParseThreshold parses a match threshold, which must lie in [0, 1].
func ParseThreshold(s string) (float64, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(t) || t < 0 || t > 1 {
		return 0, fmt.Errorf("threshold %v out of range (use a value from 0 to 1)", t)
	}
	return t, nil
}

// ParseList splits a comma-separated list, dropping empty items.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}
