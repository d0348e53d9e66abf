package models

import "time"

// Generation represents one image generation attempt
type Generation struct {
	ChatID    int64
	Prompt    string
	Model     string
	Width     int
	Height    int
	Status    string // "ok" or a failure kind such as "auth", "timeout"
	LatencyMs int64
	CreatedAt time.Time
}
