package models

type Location struct {
	ID      int64  `json:"id"`
	MapLink string `json:"mapLink"`
	UserID  string `json:"userId,omitempty"`
}
