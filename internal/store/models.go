package store

import "time"

// User is an account that owns conversion history.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// HistoryRecord is one saved conversion: the raw input, the produced
// output, which operation ran, and whether the input was valid.
type HistoryRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Operation string    `json:"operation"`
	Content   string    `json:"content"`
	Output    string    `json:"output"`
	Label     string    `json:"label"`
	Valid     bool      `json:"valid"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryPage is a bounded slice of a user's history.
type HistoryPage struct {
	Records []HistoryRecord `json:"records"`
	Total   int             `json:"total"`
}
