package domain

import "time"

type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Writer    string    `json:"writer"`
	CreatedAt time.Time `json:"created_at"`
}
