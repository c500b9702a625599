package timer

import "testing"

// TestCuesForPolicy verifies the alert policy as a pure function of the
// value transition: ticks for running decrements, accents on the final
// three seconds, finish on landing at zero, silence otherwise.
func TestCuesForPolicy(t *testing.T) {
	cases := []struct {
		name    string
		prev    int
		next    int
		running bool
		want    []CueKind
	}{
		{"plain decrement", 10, 9, true, []CueKind{CueTick}},
		{"accent at three", 4, 3, true, []CueKind{CueTick, CueAccent}},
		{"accent at two", 3, 2, true, []CueKind{CueTick, CueAccent}},
		{"accent at one", 2, 1, true, []CueKind{CueTick, CueAccent}},
		{"finish at zero", 1, 0, true, []CueKind{CueFinish}},
		{"not running", 10, 9, false, nil},
		{"no change", 5, 5, true, nil},
		{"value increased", 5, 30, true, nil},
		{"zero to zero", 0, 0, true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cuesFor(tc.prev, tc.next, tc.running)
			if len(got) != len(tc.want) {
				t.Fatalf("cuesFor(%d, %d, %v) = %v, want kinds %v",
					tc.prev, tc.next, tc.running, got, tc.want)
			}
			for i, c := range got {
				if c.Kind != tc.want[i] {
					t.Errorf("cue[%d].Kind = %v, want %v", i, c.Kind, tc.want[i])
				}
				if c.Seconds != tc.next {
					t.Errorf("cue[%d].Seconds = %d, want %d", i, c.Seconds, tc.next)
				}
			}
		})
	}
}

// TestCueKindNames verifies the wire names surfaces key their sounds off.
func TestCueKindNames(t *testing.T) {
	cases := map[CueKind]string{
		CueTick:   "tick",
		CueAccent: "accent",
		CueFinish: "finish",
		CueAlarm:  "alarm",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		if string(text) != want {
			t.Errorf("MarshalText = %q, want %q", text, want)
		}
	}
}
