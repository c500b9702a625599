package mcp

import (
	"context"
	"math"

	"github.com/claude/restbell/internal/timer"
	"github.com/mark3labs/mcp-go/mcp"
)

// snapshot is the JSON shape every timer tool returns.
type snapshot struct {
	timer.State
	Display string `json:"display"`
}

func (h *handlers) snapshot() snapshot {
	st := h.timer.State()
	return snapshot{State: st, Display: st.Display()}
}

// wholeSeconds normalizes a tool's seconds argument to a whole non-negative
// second count.
func wholeSeconds(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}

// --- Tool definitions ---

var toolGetTimerState = mcp.NewTool("get_timer_state",
	mcp.WithDescription("Read the shared rest timer: remaining seconds, whether it is counting, panel visibility, and the rendered MM:SS display."),
)

var toolStartRestTimer = mcp.NewTool("start_rest_timer",
	mcp.WithDescription("Start (or resume) the rest timer from its current remaining value. A no-op if it is already counting."),
)

var toolPauseRestTimer = mcp.NewTool("pause_rest_timer",
	mcp.WithDescription("Pause the rest timer, keeping the remaining value so a later start resumes from it."),
)

var toolStopRestTimer = mcp.NewTool("stop_rest_timer",
	mcp.WithDescription("Stop the rest timer and reset the remaining value to zero. Also silences a ringing completion alarm."),
)

var toolSetRestDuration = mcp.NewTool("set_rest_duration",
	mcp.WithDescription("Set the rest timer's remaining value without changing whether it is counting. Negative values clamp to zero."),
	mcp.WithNumber("seconds", mcp.Required(), mcp.Description("New remaining duration in seconds")),
)

var toolQuickStartRest = mcp.NewTool("quick_start_rest",
	mcp.WithDescription("Set a rest duration and start counting in one command, like tapping a preset chip."),
	mcp.WithNumber("seconds", mcp.Required(), mcp.Description("Rest duration in seconds (common presets: 45, 60, 90, 120, 180)")),
)

var toolGetWorkoutDay = mcp.NewTool("get_workout_day",
	mcp.WithDescription("Get one day of the weekly plan: focus area plus the ordered exercise list with coaching cues and video links."),
	mcp.WithString("day", mcp.Required(), mcp.Description("Day key, e.g. 'monday' through 'sunday'")),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the weekly plan's exercises by name, target muscle, or day focus (case-insensitive substring match)."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text, e.g. 'bench' or 'hamstrings'")),
)

var toolListRestPresets = mcp.NewTool("list_rest_presets",
	mcp.WithDescription("List the quick-rest duration chips with their labels and second counts."),
)

// --- Tool handlers ---

func (h *handlers) getTimerState(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.snapshot())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) startRestTimer(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.timer.Start()
	result, err := mcp.NewToolResultJSON(h.snapshot())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) pauseRestTimer(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.timer.Pause()
	result, err := mcp.NewToolResultJSON(h.snapshot())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) stopRestTimer(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.timer.Stop()
	result, err := mcp.NewToolResultJSON(h.snapshot())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) setRestDuration(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seconds, err := req.RequireFloat("seconds")
	if err != nil {
		return mcp.NewToolResultError("seconds parameter is required"), nil
	}
	h.timer.SetDuration(wholeSeconds(seconds))
	result, err := mcp.NewToolResultJSON(h.snapshot())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) quickStartRest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seconds, err := req.RequireFloat("seconds")
	if err != nil {
		return mcp.NewToolResultError("seconds parameter is required"), nil
	}
	h.timer.QuickStart(wholeSeconds(seconds))
	result, err := mcp.NewToolResultJSON(h.snapshot())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	day, ok := h.week.Day(key)
	if !ok {
		return mcp.NewToolResultError("unknown day: " + key), nil
	}
	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	hits := h.week.Search(query)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"count":   len(hits),
		"matches": hits,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listRestPresets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.presets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
