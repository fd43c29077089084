package dto

import "time"

// CommandAuditMessage is the payload published after every command,
// successful or not, for the audit trail consumer.
type CommandAuditMessage struct {
	ExecutionId string    `json:"executionId"`
	Command     string    `json:"command"`
	Intent      string    `json:"intent"`
	Tool        string    `json:"tool"`
	Cached      bool      `json:"cached"`
	Success     bool      `json:"success"`
	ErrorKind   string    `json:"errorKind,omitempty"`
	DurationMs  int64     `json:"durationMs"`
	At          time.Time `json:"at"`
}
