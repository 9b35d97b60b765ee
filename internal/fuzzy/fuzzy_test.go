package fuzzy

import (
	"math"
	"sync"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"", "", 0},
		{"abc", "abc", 0},
		{"ABC", "abc", 0},
		{"flaw", "lawn", 2},
		{"héllo", "hello", 1},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestScore_RuleOrder(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          float64
	}{
		{"alice", "Alice", 0},
		{"ali", "alice", 0.2}, // prefix is caught by the substring rule
		{"lic", "alice", 0.2},
		{"alise", "alice", 0.2}, // 1 edit / 5
		{"bobby", "bob", 0.4},   // 2 edits / 5
		{"ali", "bob", 1},
	}
	for _, tc := range cases {
		if got := Score(tc.pattern, tc.text); !approx(got, tc.want) {
			t.Errorf("Score(%q, %q) = %v, want %v", tc.pattern, tc.text, got, tc.want)
		}
	}
}

func TestSearch_EmptyPattern(t *testing.T) {
	m := New(Strings([]string{"Alice", "Bob"}))
	if got := m.Search(""); len(got) != 0 {
		t.Fatalf("empty pattern should match nothing, got %d results", len(got))
	}
}

func TestSearch_NamesExample(t *testing.T) {
	m := New(Strings([]string{"Alice", "Bob", "Alicia"}), WithThreshold(0.6))
	got := m.Search("Ali")

	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	if got[0].Item != "Alice" || got[0].Index != 0 || !approx(got[0].Score, 0.2) {
		t.Fatalf("first match should be Alice@0 with 0.2, got %+v", got[0])
	}
	if got[1].Item != "Alicia" || got[1].Index != 2 || !approx(got[1].Score, 0.2) {
		t.Fatalf("second match should be Alicia@2 with 0.2, got %+v", got[1])
	}
}

func TestSearch_SortedAndStable(t *testing.T) {
	m := New(Strings([]string{"dragon lair", "Dragon", "the dragon", "dragons", "DRAGON", "dragoon"}))
	got := m.Search("dragon")

	// dragoon is one edit away (1/7), which beats the flat substring score.
	wantOrder := []int{1, 4, 5, 0, 2, 3}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d matches, got %d: %+v", len(wantOrder), len(got), got)
	}
	for i, idx := range wantOrder {
		if got[i].Index != idx {
			t.Fatalf("position %d: want index %d, got %d (%+v)", i, idx, got[i].Index, got)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score < got[i-1].Score {
			t.Fatalf("results not sorted at %d: %v < %v", i, got[i].Score, got[i-1].Score)
		}
	}
	if !approx(got[2].Score, 1.0/7.0) {
		t.Fatalf("dragoon should score 1/7, got %v", got[2].Score)
	}
}

func TestSearch_Threshold(t *testing.T) {
	names := Strings([]string{"Seraphina", "Serafina", "Sera", "Bartholomew"})

	strict := New(names, WithThreshold(0))
	if got := strict.Search("sera"); len(got) != 1 || got[0].Index != 2 {
		t.Fatalf("threshold 0 should keep only the exact match, got %+v", got)
	}

	loose := New(names)
	for _, r := range loose.Search("serafna") {
		if r.Score > DefaultThreshold {
			t.Fatalf("result %+v exceeds threshold", r)
		}
		if r.Index == 3 {
			t.Fatal("Bartholomew should not match serafna")
		}
	}
}

type character struct {
	Name     string   `json:"name"`
	Nickname string   `json:"nick"`
	Tags     []string `json:"tags"`
	secret   string
}

type record map[string]string

func (r record) Field(name string) (any, bool) {
	v, ok := r["x_"+name]
	return v, ok
}

type characterName string

type rank int

func (r rank) String() string { return [...]string{"squire", "knight", "lord"}[r] }

func TestSearchableText(t *testing.T) {
	cases := []struct {
		name string
		item any
		keys []string
		want string
	}{
		{"plain string ignores keys", "Alice", []string{"name"}, "alice"},
		{"map keys in order", map[string]any{"name": "Alice", "title": "Queen"}, []string{"title", "name"}, "queen alice"},
		{"string map", map[string]string{"name": "Bob"}, []string{"name"}, "bob"},
		{"missing field is empty", map[string]any{"name": "Alice"}, []string{"name", "missing"}, "alice "},
		{"nil field is empty", map[string]any{"name": nil}, []string{"name"}, ""},
		{"struct by json tag", character{Name: "Lyra", Nickname: "Ly"}, []string{"nick", "name"}, "ly lyra"},
		{"struct by field name", &character{Name: "Lyra"}, []string{"Name"}, "lyra"},
		{"struct list field", character{Tags: []string{"elf", "mage"}}, []string{"tags"}, "elf,mage"},
		{"unexported field skipped", character{secret: "x"}, []string{"secret"}, ""},
		{"fielder", record{"x_name": "Orin"}, []string{"name"}, "orin"},
		{"numbers formatted", map[string]any{"uid": 42}, []string{"uid"}, "42"},
		{"whole item json", map[string]any{"name": "Bob"}, nil, `{"name":"bob"}`},
		{"whole item keeps html characters", map[string]any{"name": "Tom & Jerry <3"}, nil, `{"name":"tom & jerry <3"}`},
		{"named string ignores keys", characterName("Alice"), []string{"comment"}, "alice"},
		{"named string without keys", characterName("Alice"), nil, "alice"},
		{"stringer without keys", rank(1), nil, "knight"},
		{"nil item", nil, []string{"name"}, ""},
		{"unserializable item", func() {}, nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New([]any{tc.item}, WithKeys(tc.keys...))
			if got := m.Text(0); got != tc.want {
				t.Fatalf("text = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSearch_WholeItemWithHTMLCharacters(t *testing.T) {
	m := New([]any{map[string]any{"name": "Tom & Jerry <3"}})
	got := m.Search("tom & jerry <3")
	if len(got) != 1 || !approx(got[0].Score, 0.2) {
		t.Fatalf("expected a substring match on the raw text, got %+v", got)
	}
}

func TestSearch_NamedStringExact(t *testing.T) {
	m := New([]any{characterName("Alice"), characterName("Bob")}, WithKeys("comment"))
	got := m.Search("alice")
	if len(got) != 1 || got[0].Index != 0 || got[0].Score != 0 {
		t.Fatalf("expected an exact match on the named string, got %+v", got)
	}
	if got[0].Item != characterName("Alice") {
		t.Fatalf("item should be returned unchanged, got %#v", got[0].Item)
	}
}

func TestSearch_MissingFieldNeverExact(t *testing.T) {
	m := New([]any{map[string]any{"name": "Alice"}}, WithKeys("name", "missing"))
	got := m.Search("alice")
	if len(got) != 1 || !approx(got[0].Score, 0.2) {
		t.Fatalf("trailing separator should downgrade to substring score, got %+v", got)
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	items := Strings([]string{"Alice", "Bob"})
	keys := []string{"name"}
	m := New(items, WithKeys(keys...))

	items[0] = "Zed"
	keys[0] = "other"

	if got := m.Search("alice"); len(got) != 1 || got[0].Item != "Alice" {
		t.Fatalf("matcher should not see caller mutations, got %+v", got)
	}
	if m.Keys()[0] != "name" {
		t.Fatalf("keys should be copied, got %v", m.Keys())
	}
	if m.Len() != 2 || m.Threshold() != DefaultThreshold {
		t.Fatalf("unexpected Len/Threshold: %d %v", m.Len(), m.Threshold())
	}
}

func TestSearch_Concurrent(t *testing.T) {
	m := New(Strings([]string{"Alice", "Bob", "Alicia", "Alistair"}))
	want := len(m.Search("ali"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := len(m.Search("ali")); got != want {
				t.Errorf("concurrent search returned %d results, want %d", got, want)
			}
		}()
	}
	wg.Wait()
}
