package fuzzy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Fielder is implemented by records that resolve their own fields by name.
// It takes precedence over map and struct lookup.
type Fielder interface {
	Field(name string) (any, bool)
}

// searchableText derives the text a candidate is scored against.
func searchableText(item any, keys []string) string {
	if s, ok := stringKind(item); ok {
		return s
	}
	if len(keys) == 0 {
		return stringify(item)
	}

	parts := make([]string, len(keys))
	for i, k := range keys {
		v, ok := lookup(item, k)
		if !ok {
			continue
		}
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, " ")
}

// stringify renders a whole candidate when no keys are configured.
func stringify(item any) string {
	if item == nil {
		return ""
	}
	if s, ok := item.(fmt.Stringer); ok {
		return s.String()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// stringKind reports whether item is a string, including named string types.
func stringKind(item any) (string, bool) {
	if s, ok := item.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(item)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func lookup(item any, key string) (any, bool) {
	switch rec := item.(type) {
	case nil:
		return nil, false
	case Fielder:
		return rec.Field(key)
	case map[string]any:
		v, ok := rec[key]
		return v, ok
	case map[string]string:
		v, ok := rec[key]
		return v, ok
	}

	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		return structField(rv, key)
	}
	return nil, false
}

// structField finds an exported field by its json tag, then by name.
func structField(rv reflect.Value, key string) (any, bool) {
	t := rv.Type()
	byName := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == key {
			return rv.Field(i).Interface(), true
		}
		if byName < 0 && strings.EqualFold(f.Name, key) {
			byName = i
		}
	}
	if byName >= 0 {
		return rv.Field(byName).Interface(), true
	}
	return nil, false
}

// formatValue turns a field value into text. Lists are joined with commas.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
