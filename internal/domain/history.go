package domain

import "time"

// HistoryRecord captures one generated command and its outcome.
type HistoryRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Command   string    `json:"command"`
	Dangerous bool      `json:"dangerous"`
	Executed  bool      `json:"executed"`
	Success   bool      `json:"success"`
	ExitCode  int       `json:"exit_code"`
}

// HistoryStats aggregates stored records for the stats view.
type HistoryStats struct {
	Total     int
	Executed  int
	Succeeded int
	Dangerous int
	Newest    time.Time
}
