package dto

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ShortenURLRequest struct {
	LongURL string `json:"long_url"`
}

type ShortenURLResponse struct {
	ShortURL string `json:"short_url"`
}

type URLListItem struct {
	ShortCode string    `json:"short_code"`
	LongURL   string    `json:"long_url"`
	CreatedAt time.Time `json:"created_at"`
}

type StatsResponse struct {
	ShortCode string `json:"short_code"`
	Clicks    int64  `json:"clicks"`
}
