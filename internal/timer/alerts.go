package timer

import "time"

// CueKind identifies which sound a surface should play for a countdown
// transition.
type CueKind int

const (
	// CueTick fires for every running decrement that changes the value.
	CueTick CueKind = iota
	// CueAccent fires alongside the tick when the countdown lands on 3, 2 or 1.
	CueAccent
	// CueFinish fires once when the countdown reaches zero, replacing the tick.
	CueFinish
	// CueAlarm fires for each repetition of the post-completion alarm pattern.
	CueAlarm
)

func (k CueKind) String() string {
	switch k {
	case CueTick:
		return "tick"
	case CueAccent:
		return "accent"
	case CueFinish:
		return "finish"
	case CueAlarm:
		return "alarm"
	}
	return "unknown"
}

// MarshalText encodes the kind as its string name so cues serialize
// readably in JSON events.
func (k CueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Cue is one alert emission. Seconds is the countdown value the cue fired
// at. AltTone alternates on alarm repetitions so the pattern oscillates
// between two pitches.
type Cue struct {
	Kind    CueKind `json:"kind"`
	Seconds int     `json:"seconds"`
	AltTone bool    `json:"alt_tone,omitempty"`
}

// cuesFor is the alert policy: a pure function of the value transition.
// Only a running decrement that actually changes the value produces cues;
// pausing, stopping and duration changes stay silent.
func cuesFor(prev, next int, running bool) []Cue {
	if !running || next >= prev {
		return nil
	}
	if next == 0 {
		return []Cue{{Kind: CueFinish, Seconds: 0}}
	}
	cues := []Cue{{Kind: CueTick, Seconds: next}}
	if next <= 3 {
		cues = append(cues, Cue{Kind: CueAccent, Seconds: next})
	}
	return cues
}

// AlertSink receives cue and vibration requests from the service. Delivery
// is best-effort: a platform without audio or haptics must no-op, never
// fail or block. Sinks are called with the service lock held and must not
// call back into the service.
type AlertSink interface {
	Cue(c Cue)
	Vibrate(d time.Duration)
}

// NopSink discards all cues and vibration requests.
type NopSink struct{}

func (NopSink) Cue(Cue)               {}
func (NopSink) Vibrate(time.Duration) {}
