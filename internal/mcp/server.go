// Package mcp exposes the shared rest timer and the weekly plan to model
// clients over the Model Context Protocol. Tools mutate the same timer
// service the HTTP surface uses, so a command issued here is visible on
// every connected screen.
package mcp

import (
	"log/slog"

	"github.com/claude/restbell/internal/plan"
	"github.com/claude/restbell/internal/preset"
	"github.com/claude/restbell/internal/timer"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(t *timer.Service, week *plan.Week, presets []preset.Preset, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Restbell", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Restbell workout companion. Control the shared rest timer (start, pause, stop, quick-start presets) and browse the fixed weekly workout plan. The timer is global: every connected surface shows the same countdown."),
	)

	h := &handlers{timer: t, week: week, presets: presets, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetTimerState, Handler: h.getTimerState},
		server.ServerTool{Tool: toolStartRestTimer, Handler: h.startRestTimer},
		server.ServerTool{Tool: toolPauseRestTimer, Handler: h.pauseRestTimer},
		server.ServerTool{Tool: toolStopRestTimer, Handler: h.stopRestTimer},
		server.ServerTool{Tool: toolSetRestDuration, Handler: h.setRestDuration},
		server.ServerTool{Tool: toolQuickStartRest, Handler: h.quickStartRest},
		server.ServerTool{Tool: toolGetWorkoutDay, Handler: h.getWorkoutDay},
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolListRestPresets, Handler: h.listRestPresets},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWeeklyPlan, Handler: h.weeklyPlan},
		server.ServerResource{Resource: resRestPresets, Handler: h.restPresets},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	timer   *timer.Service
	week    *plan.Week
	presets []preset.Preset
	log     *slog.Logger
}

// --- Resource definitions ---

var resWeeklyPlan = mcp.NewResource(
	"restbell://weekly_plan",
	"Weekly Workout Plan",
	mcp.WithResourceDescription("The fixed weekly plan: focus area and exercises for every day, with coaching cues and reference video links"),
	mcp.WithMIMEType("application/json"),
)

var resRestPresets = mcp.NewResource(
	"restbell://rest_presets",
	"Rest Presets",
	mcp.WithResourceDescription("The quick-rest duration chips (45s to 3min) available for one-tap timer starts"),
	mcp.WithMIMEType("application/json"),
)
