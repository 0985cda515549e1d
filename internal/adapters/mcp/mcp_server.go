// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"habit-tracker",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_dashboard",
			mcp.WithDescription("Get the habit dashboard: this week's grid, per-habit streaks, perfect days and the overall streak"),
		),
		s.handleGetDashboard,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_habits",
			mcp.WithDescription("List all habits with their streak statistics and whether they are done today"),
		),
		s.handleListHabits,
	)

	addHabitTool := mcp.NewTool(
		"add_habit",
		mcp.WithDescription("Create a new habit. Names must be unique, ignoring case"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The habit name"),
		),
	)
	s.server.AddTool(addHabitTool, s.handleAddHabit)

	removeHabitTool := mcp.NewTool(
		"remove_habit",
		mcp.WithDescription("Delete a habit and its completion history"),
		mcp.WithString(
			"habit_id",
			mcp.Required(),
			mcp.Description("The ID of the habit to remove"),
		),
	)
	s.server.AddTool(removeHabitTool, s.handleRemoveHabit)

	toggleHabitTool := mcp.NewTool(
		"toggle_habit",
		mcp.WithDescription("Flip a habit's completion for today or a future day. Past days cannot be changed"),
		mcp.WithString(
			"habit_id",
			mcp.Required(),
			mcp.Description("The ID of the habit to toggle"),
		),
		mcp.WithString(
			"day",
			mcp.Description("Day to toggle as YYYY-MM-DD (default: today)"),
		),
	)
	s.server.AddTool(toggleHabitTool, s.handleToggleHabit)

	s.server.AddTool(
		mcp.NewTool(
			"list_challenges",
			mcp.WithDescription("List all challenges"),
		),
		s.handleListChallenges,
	)

	addChallengeTool := mcp.NewTool(
		"add_challenge",
		mcp.WithDescription("Create a new challenge"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The challenge name"),
		),
	)
	s.server.AddTool(addChallengeTool, s.handleAddChallenge)

	removeChallengeTool := mcp.NewTool(
		"remove_challenge",
		mcp.WithDescription("Delete a challenge"),
		mcp.WithString(
			"challenge_id",
			mcp.Required(),
			mcp.Description("The ID of the challenge to remove"),
		),
	)
	s.server.AddTool(removeChallengeTool, s.handleRemoveChallenge)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// mutationResult maps a mutation error onto a tool result. Duplicate names
// are reported as tool errors; rejected no-ops report that nothing changed.
func mutationResult(err error, onSuccess func() map[string]interface{}) (*mcp.CallToolResult, error) {
	switch {
	case err == nil:
		result := onSuccess()
		result["changed"] = true
		return jsonResult(result)
	case domain.IsUserVisible(err):
		return mcp.NewToolResultError(err.Error()), nil
	case domain.IsNoop(err):
		return jsonResult(map[string]interface{}{"changed": false})
	default:
		return nil, err
	}
}

func habitData(h *domain.Habit, today domain.DayKey) map[string]interface{} {
	return map[string]interface{}{
		"id":              h.ID,
		"name":            h.Name,
		"done_today":      h.Completed(today),
		"current_streak":  h.Analytics.CurrentStreak,
		"highest_streak":  h.Analytics.HighestStreak,
		"total_completed": h.Analytics.TotalCompleted,
	}
}

func challengeData(challenges []domain.Challenge) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(challenges))
	for _, c := range challenges {
		list = append(list, map[string]interface{}{"id": c.ID, "name": c.Name})
	}
	return list
}

// handleGetDashboard handles the get_dashboard tool.
func (s *Server) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.stateProvider.GetDashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard: %w", err)
	}
	today := d.Today()

	week := make([]map[string]interface{}, 0, len(d.Week))
	for i, day := range d.Week {
		week = append(week, map[string]interface{}{
			"day":       string(day.Key),
			"label":     day.Label,
			"today":     day.IsToday,
			"locked":    day.Locked,
			"completed": d.Series[i],
		})
	}

	habits := make([]map[string]interface{}, 0, len(d.Habits))
	for _, h := range d.Habits {
		data := habitData(h, today)
		checked := make([]bool, len(d.Week))
		for i, day := range d.Week {
			checked[i] = h.Completed(day.Key)
		}
		data["week"] = checked
		habits = append(habits, data)
	}

	var lastPerfect interface{}
	if !d.Summary.LastPerfectDate.IsZero() {
		lastPerfect = string(d.Summary.LastPerfectDate)
	}

	result := map[string]interface{}{
		"greeting": d.Greeting,
		"today":    string(today),
		"week":     week,
		"habits":   habits,
		"summary": map[string]interface{}{
			"perfect_days":        d.Summary.PerfectDays,
			"streak":              d.Summary.Streak,
			"last_perfect_date":   lastPerfect,
			"perfect_today":       d.Summary.PerfectToday,
			"total_completed":     d.Summary.TotalCompleted,
			"skipped_days":        d.Summary.SkippedDays,
			"highest_streak_ever": d.Summary.HighestStreakEver,
		},
		"challenges": challengeData(d.Challenges),
	}

	return jsonResult(result)
}

// handleListHabits handles the list_habits tool.
func (s *Server) handleListHabits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.stateProvider.GetDashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	habits := make([]map[string]interface{}, 0, len(d.Habits))
	for _, h := range d.Habits {
		habits = append(habits, habitData(h, d.Today()))
	}

	return jsonResult(map[string]interface{}{
		"habits": habits,
		"count":  len(habits),
	})
}

// handleAddHabit handles the add_habit tool.
func (s *Server) handleAddHabit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}

	habit, err := s.stateProvider.AddHabit(ctx, name)
	return mutationResult(err, func() map[string]interface{} {
		return map[string]interface{}{"id": habit.ID, "name": habit.Name}
	})
}

// handleRemoveHabit handles the remove_habit tool.
func (s *Server) handleRemoveHabit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID, err := request.RequireString("habit_id")
	if err != nil {
		return mcp.NewToolResultError("habit_id is required: " + err.Error()), nil
	}

	err = s.stateProvider.RemoveHabit(ctx, habitID)
	return mutationResult(err, func() map[string]interface{} {
		return map[string]interface{}{"id": habitID}
	})
}

// handleToggleHabit handles the toggle_habit tool.
func (s *Server) handleToggleHabit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID, err := request.RequireString("habit_id")
	if err != nil {
		return mcp.NewToolResultError("habit_id is required: " + err.Error()), nil
	}

	var day domain.DayKey
	if raw := request.GetString("day", ""); raw != "" {
		day, err = domain.ParseDayKey(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		d, err := s.stateProvider.GetDashboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read today: %w", err)
		}
		day = d.Today()
	}

	done, err := s.stateProvider.ToggleHabit(ctx, habitID, day)
	return mutationResult(err, func() map[string]interface{} {
		return map[string]interface{}{"id": habitID, "day": string(day), "done": done}
	})
}

// handleListChallenges handles the list_challenges tool.
func (s *Server) handleListChallenges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.stateProvider.GetDashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	return jsonResult(map[string]interface{}{
		"challenges": challengeData(d.Challenges),
		"count":      len(d.Challenges),
	})
}

// handleAddChallenge handles the add_challenge tool.
func (s *Server) handleAddChallenge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}

	challenge, err := s.stateProvider.AddChallenge(ctx, name)
	return mutationResult(err, func() map[string]interface{} {
		return map[string]interface{}{"id": challenge.ID, "name": challenge.Name}
	})
}

// handleRemoveChallenge handles the remove_challenge tool.
func (s *Server) handleRemoveChallenge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	challengeID, err := request.RequireString("challenge_id")
	if err != nil {
		return mcp.NewToolResultError("challenge_id is required: " + err.Error()), nil
	}

	err = s.stateProvider.RemoveChallenge(ctx, challengeID)
	return mutationResult(err, func() map[string]interface{} {
		return map[string]interface{}{"id": challengeID}
	})
}
