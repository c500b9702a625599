package timer

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	tickInterval     = time.Second
	subscriberBuffer = 16

	finishVibration = 400 * time.Millisecond
	alarmVibration  = 200 * time.Millisecond
)

// Event is delivered to subscribers after every committed mutation. Cues
// carries the alerts produced by that specific transition, if any.
type Event struct {
	State   State  `json:"state"`
	Display string `json:"display"`
	Cues    []Cue  `json:"cues,omitempty"`
}

// AlarmConfig controls the repeating alarm pattern fired after the
// countdown completes, so the user notices even without looking at a
// screen. Interval is the gap between repetitions; Duration bounds the
// whole pattern.
type AlarmConfig struct {
	Enabled  bool
	Duration time.Duration
	Interval time.Duration
}

// DefaultAlarm repeats for roughly ten seconds after completion.
var DefaultAlarm = AlarmConfig{Enabled: true, Duration: 10 * time.Second, Interval: time.Second}

// Service owns the single shared countdown. All commands are synchronous
// mutations guarded by one mutex; every UI surface reads and writes the
// same state through it, so no surface can hold a drifting private copy.
type Service struct {
	mu    sync.Mutex
	state State
	store Store
	sink  AlertSink
	clock Clock
	alarm AlarmConfig
	log   *slog.Logger

	tickCancel chan struct{} // non-nil while a tick source is armed
	ticker     Ticker
	alarmStop  chan struct{} // non-nil while the completion alarm is repeating
	alarmTimer Timer

	subs   map[uuid.UUID]chan Event
	closed bool
}

// New builds the process-wide timer, rehydrating the countdown from store.
// Malformed or absent persisted state yields a zeroed, stopped timer. If
// the persisted state was running with time left, counting resumes
// immediately. A nil sink discards cues; a nil store disables persistence.
func New(store Store, sink AlertSink, alarm AlarmConfig, log *slog.Logger) *Service {
	return newService(store, sink, alarm, log, SystemClock)
}

func newService(store Store, sink AlertSink, alarm AlarmConfig, log *slog.Logger, clock Clock) *Service {
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		store: store,
		sink:  sink,
		clock: clock,
		alarm: alarm,
		log:   log,
		subs:  make(map[uuid.UUID]chan Event),
	}

	if store != nil {
		seconds, running, err := store.Load()
		if err != nil {
			log.Warn("loading persisted timer state", "error", err)
			seconds, running = 0, false
		}
		if seconds < 0 {
			seconds = 0
		}
		s.state.RemainingSeconds = seconds
		s.state.Running = running
	}

	s.mu.Lock()
	if s.state.Running && s.state.RemainingSeconds > 0 {
		s.armTickLocked()
	}
	s.mu.Unlock()

	return s
}

// State returns a snapshot of the shared timer state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetDuration replaces the countdown value. Negative input clamps to zero.
// Starting or stopping is the caller's decision: a stopped timer stays
// stopped, and a running timer keeps counting from the new value.
func (s *Service) SetDuration(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	if s.state.RemainingSeconds == seconds {
		return
	}
	s.state.RemainingSeconds = seconds
	s.cancelAlarmLocked()
	if s.state.Running {
		if seconds > 0 {
			s.armTickLocked()
		} else {
			s.stopTickLocked()
		}
	}
	s.commitLocked(nil)
}

// Start sets the running flag and arms the tick source. Calling Start on a
// timer that is already counting is a no-op; there is never more than one
// tick source.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	if s.state.Running {
		return
	}
	s.state.Running = true
	if s.state.RemainingSeconds > 0 {
		s.armTickLocked()
	}
	s.commitLocked(nil)
}

// Pause freezes the countdown at its current value and tears the tick
// source down entirely. A later Start resumes from the same value.
func (s *Service) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	if !s.state.Running {
		return
	}
	s.state.Running = false
	s.stopTickLocked()
	s.commitLocked(nil)
}

// Stop halts the countdown and zeroes the clock, unlike Pause which keeps
// the value. Any ringing completion alarm is silenced.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	if !s.state.Running && s.state.RemainingSeconds == 0 && s.alarmStop == nil {
		return
	}
	s.state.Running = false
	s.state.RemainingSeconds = 0
	s.stopTickLocked()
	s.cancelAlarmLocked()
	s.commitLocked(nil)
}

// QuickStart sets a duration and starts counting in one command. Every
// preset chip and quick-rest control goes through here.
func (s *Service) QuickStart(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	s.state.RemainingSeconds = seconds
	s.state.Running = true
	s.cancelAlarmLocked()
	if seconds > 0 {
		s.armTickLocked()
	} else {
		s.stopTickLocked()
	}
	s.commitLocked(nil)
}

// ShowPanel marks the detail control panel visible.
func (s *Service) ShowPanel() { s.setPanel(true) }

// HidePanel marks the detail control panel hidden.
func (s *Service) HidePanel() { s.setPanel(false) }

// setPanel flips the UI flag and notifies subscribers. The flag is never
// persisted, so the panel always opens closed after a restart.
func (s *Service) setPanel(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	if s.state.PanelVisible == visible {
		return
	}
	s.state.PanelVisible = visible
	s.notifyLocked(nil)
}

// Subscribe registers an observer of committed mutations. The returned
// cancel func must be called when the observer goes away; the channel is
// closed when either side cancels. A slow consumer misses events rather
// than blocking commands.
func (s *Service) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpenLocked()

	id := uuid.New()
	ch := make(chan Event, subscriberBuffer)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Close tears down the tick source, cancels any pending alarm repetitions
// and closes all subscriber channels. Issuing commands after Close panics:
// that is a wiring bug in the caller, not a runtime condition.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTickLocked()
	s.cancelAlarmLocked()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Service) ensureOpenLocked() {
	if s.closed {
		panic("timer: command issued after Close")
	}
}

// armTickLocked replaces any existing tick source with a fresh one. The
// goroutine hands its cancel channel back to advance, which checks identity
// before decrementing, so a stale source can never double-tick.
func (s *Service) armTickLocked() {
	s.stopTickLocked()

	cancel := make(chan struct{})
	s.tickCancel = cancel
	tk := s.clock.NewTicker(tickInterval)
	s.ticker = tk

	go func() {
		for {
			select {
			case <-cancel:
				return
			case <-tk.C():
				s.advance(cancel)
			}
		}
	}()
}

// stopTickLocked tears the tick source down entirely rather than idling it,
// so a paused timer costs no wakeups.
func (s *Service) stopTickLocked() {
	if s.tickCancel != nil {
		close(s.tickCancel)
		s.tickCancel = nil
	}
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// advance applies one elapsed second. Missed ticks are not coalesced; a
// throttled host loses seconds, which is accepted.
func (s *Service) advance(cancel chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tickCancel != cancel || !s.state.Running || s.state.RemainingSeconds <= 0 {
		return
	}

	prev := s.state.RemainingSeconds
	s.state.RemainingSeconds = prev - 1
	cues := cuesFor(prev, s.state.RemainingSeconds, true)

	if s.state.RemainingSeconds == 0 {
		// The decrement halts at zero but the running flag stays set, so a
		// later duration change resumes counting.
		s.stopTickLocked()
		s.sink.Vibrate(finishVibration)
		s.startAlarmLocked()
	}
	s.commitLocked(cues)
}

// commitLocked persists the durable fields, fans the new state out to
// subscribers and delivers cues to the sink. Persistence failures are
// logged, never surfaced to callers.
func (s *Service) commitLocked(cues []Cue) {
	if s.store != nil {
		if err := s.store.Save(s.state.RemainingSeconds, s.state.Running); err != nil {
			s.log.Warn("persisting timer state", "error", err)
		}
	}
	s.notifyLocked(cues)
	for _, c := range cues {
		s.sink.Cue(c)
	}
}

func (s *Service) notifyLocked(cues []Cue) {
	ev := Event{State: s.state, Display: s.state.Display(), Cues: cues}
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.log.Warn("dropping timer event for slow subscriber", "subscriber", id)
		}
	}
}

// startAlarmLocked begins the repeating completion alarm. Repetitions
// alternate tone pitch and stop after the configured duration, on Stop, or
// when the service closes.
func (s *Service) startAlarmLocked() {
	if !s.alarm.Enabled || s.alarm.Interval <= 0 || s.alarm.Duration <= 0 {
		return
	}
	s.cancelAlarmLocked()

	stop := make(chan struct{})
	s.alarmStop = stop
	total := int(s.alarm.Duration / s.alarm.Interval)
	if total < 1 {
		total = 1
	}
	s.scheduleAlarmLocked(stop, 1, total)
}

func (s *Service) scheduleAlarmLocked(stop chan struct{}, n, total int) {
	s.alarmTimer = s.clock.AfterFunc(s.alarm.Interval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.alarmStop != stop {
			return
		}
		s.sink.Cue(Cue{Kind: CueAlarm, AltTone: n%2 == 1})
		s.sink.Vibrate(alarmVibration)
		if n >= total {
			s.alarmStop = nil
			s.alarmTimer = nil
			return
		}
		s.scheduleAlarmLocked(stop, n+1, total)
	})
}

// cancelAlarmLocked stops pending alarm repetitions so no dangling callback
// fires after its owner is gone.
func (s *Service) cancelAlarmLocked() {
	if s.alarmStop != nil {
		close(s.alarmStop)
		s.alarmStop = nil
	}
	if s.alarmTimer != nil {
		s.alarmTimer.Stop()
		s.alarmTimer = nil
	}
}
