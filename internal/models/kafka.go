package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicClicks     = "clicks"
	TopicDeadLetter = "clicks.deadletter"
	TopicTopClicked = "clicks.top"
)

// KafkaMessageClick is the wire form of one click event on the clicks
// topic. Timestamp is set at publish time, not at consumption time.
type KafkaMessageClick struct {
	EventID   uuid.UUID `json:"event_id"`
	URLID     int64     `json:"url_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaMessageTopClicked carries cache warm-up candidates from the worker
// back to the API.
type KafkaMessageTopClicked struct {
	ValidUntil time.Time `json:"valid_until"`
	Entries    []struct {
		ShortCode string `json:"short_code"`
		LongURL   string `json:"long_url"`
	} `json:"entries"`
}
