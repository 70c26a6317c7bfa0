package model

// Todo is the domain model for a to-do entry.
// The JSON shape matches jsonplaceholder's /todos payload.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
