package plan

import (
	"strings"
	"testing"
)

func loadWeek(t *testing.T) *Week {
	t.Helper()
	w, err := Load()
	if err != nil {
		t.Fatalf("loading embedded plan: %v", err)
	}
	return w
}

// TestLoadWeek verifies the embedded plan parses and covers all seven
// days in order, each with a focus area and at least one exercise.
func TestLoadWeek(t *testing.T) {
	w := loadWeek(t)

	wantOrder := []string{
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}
	if len(w.Days) != len(wantOrder) {
		t.Fatalf("days = %d, want %d", len(w.Days), len(wantOrder))
	}
	for i, d := range w.Days {
		if d.Key != wantOrder[i] {
			t.Errorf("day[%d].Key = %q, want %q", i, d.Key, wantOrder[i])
		}
		if d.Label == "" || d.Focus == "" {
			t.Errorf("day %q missing label or focus", d.Key)
		}
		if len(d.Exercises) == 0 {
			t.Errorf("day %q has no exercises", d.Key)
		}
		for _, ex := range d.Exercises {
			if ex.Name == "" || ex.Target == "" {
				t.Errorf("day %q has an exercise missing name or target", d.Key)
			}
			if len(ex.Cues) == 0 {
				t.Errorf("exercise %q has no cues", ex.Name)
			}
		}
	}
}

// TestDayLookup verifies lookup by key, including case and whitespace
// normalization, and the not-found path.
func TestDayLookup(t *testing.T) {
	w := loadWeek(t)

	d, ok := w.Day("monday")
	if !ok {
		t.Fatal("monday not found")
	}
	if d.Label != "Monday" {
		t.Errorf("label = %q, want Monday", d.Label)
	}

	if d2, ok := w.Day("  MONDAY "); !ok || d2.Key != "monday" {
		t.Error("normalized lookup failed")
	}

	if _, ok := w.Day("funday"); ok {
		t.Error("unknown day key reported as found")
	}
}

// TestSearch verifies case-insensitive substring search across exercise
// names, target text and day focus areas.
func TestSearch(t *testing.T) {
	w := loadWeek(t)

	hits := w.Search("bench")
	if len(hits) == 0 {
		t.Fatal("no hits for 'bench'")
	}
	for _, m := range hits {
		if !strings.Contains(strings.ToLower(m.Exercise.Name), "bench") {
			t.Errorf("hit %q does not contain 'bench'", m.Exercise.Name)
		}
	}

	// A focus-area query returns every exercise of the matching day.
	legDay, _ := w.Day("wednesday")
	hits = w.Search("legs")
	if len(hits) < len(legDay.Exercises) {
		t.Errorf("focus search returned %d hits, want at least %d",
			len(hits), len(legDay.Exercises))
	}

	// Target muscle text is searchable too.
	if len(w.Search("hamstrings")) == 0 {
		t.Error("no hits for target text 'hamstrings'")
	}

	if got := w.Search(""); got != nil {
		t.Errorf("empty query returned %d hits, want none", len(got))
	}
	if got := w.Search("zzzznotareal"); got != nil {
		t.Errorf("nonsense query returned %d hits, want none", len(got))
	}
}
