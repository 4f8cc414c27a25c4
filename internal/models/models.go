package models

import "time"

// URLMapping is a short_code -> long_url binding. The pair is immutable
// after creation; there is no update path.
type URLMapping struct {
	ID        int64
	ShortCode string
	LongURL   string
	OwnerID   int64
	CreatedAt time.Time
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ClickRow is one persisted analytics record, written by the ingestor.
type ClickRow struct {
	URLID     int64
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// RequestMeta carries the redirect request attributes that end up in a
// click event. Both fields are best effort and may be empty.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// TopClicked is the most-clicked mappings over a window, used to pre-warm
// the resolution cache.
type TopClicked struct {
	ValidUntil time.Time
	Entries    []TopClickedEntry
}

type TopClickedEntry struct {
	ShortCode string
	LongURL   string
}
