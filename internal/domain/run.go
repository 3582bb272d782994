package domain

import "time"

// Run statuses recorded in the journal.
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// RunRecord describes one pipeline run for the local journal.
type RunRecord struct {
	RunID             string    `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	InputPath         string    `json:"input_path"`
	Orders            int       `json:"orders"`
	Months            int       `json:"months"`
	MonthsUnavailable int       `json:"months_unavailable"`
	Outputs           []string  `json:"outputs,omitempty"`
	Status            string    `json:"status"`
	Error             string    `json:"error,omitempty"`
}
