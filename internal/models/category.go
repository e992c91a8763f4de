package models

// Category is a menu category owned by the signed-in store.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"` // base64
}
