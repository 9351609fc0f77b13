package models

import "time"

// Report is one generated market report.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Tickers     []string  `json:"tickers"`
	Text        string    `json:"text"`
}
