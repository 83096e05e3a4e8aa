package models

import "time"

// LaunchStatus represents the state of a launch on the host.
type LaunchStatus string

const (
	// StatusPending indicates the launch was accepted but not started.
	StatusPending LaunchStatus = "pending"
	// StatusRunning indicates the open command is running.
	StatusRunning LaunchStatus = "running"
	// StatusSuccess indicates the application was opened.
	StatusSuccess LaunchStatus = "success"
	// StatusFailed indicates the open command failed.
	StatusFailed LaunchStatus = "failed"
)

// Done reports whether the status is terminal.
func (s LaunchStatus) Done() bool {
	return s == StatusSuccess || s == StatusFailed
}

// LaunchRequest asks the host to open one application by its exact name.
type LaunchRequest struct {
	ID              string `json:"id,omitempty"`
	ApplicationName string `json:"application_name" binding:"required"`
}

// LaunchResponse is the asynchronous completion of a LaunchRequest.
type LaunchResponse struct {
	ID      string `json:"id"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// LaunchRecord is the host-side view of one launch.
type LaunchRecord struct {
	CreatedAt       time.Time    `json:"created_at"`
	StartedAt       *time.Time   `json:"started_at"`
	FinishedAt      *time.Time   `json:"finished_at"`
	ID              string       `json:"id"`
	ApplicationName string       `json:"application_name"`
	Status          LaunchStatus `json:"status"`
	Error           string       `json:"error,omitempty"`
}

// Response converts a finished record into its reply.
func (r *LaunchRecord) Response() LaunchResponse {
	return LaunchResponse{
		ID:      r.ID,
		Success: r.Status == StatusSuccess,
		Error:   r.Error,
	}
}
