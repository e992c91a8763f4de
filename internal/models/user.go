package models

// User is the store profile returned by the users service.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StoreName string `json:"storeName"`
	City      string `json:"city"`
	Logo      string `json:"logo,omitempty"` // base64 jpeg
}
