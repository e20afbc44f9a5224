package handlers

import (
	"strconv"
	"strings"
	"time"

	"freelancehub/exceptions"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type createProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

type assignRequest struct {
	SolverID string `json:"solverId"`
}

type createRequestRequest struct {
	ProjectID string `json:"projectId"`
	Message   string `json:"message"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
	Timeline    string `json:"timeline"`
}

type reviewRequest struct {
	Status string `json:"status"`
}

// parseTimeline accepts a full RFC 3339 timestamp or a bare date.
func parseTimeline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, exceptions.BadRequest("Timeline is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, exceptions.BadRequest("Timeline must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

// queryFlag reads a boolean query parameter. Unparseable values count as false.
func queryFlag(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}
