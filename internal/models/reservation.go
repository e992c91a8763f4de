package models

type Reservation struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Datetime       string `json:"datetime"`
	NumberOfPeople int    `json:"numberOfPeople"`
	Message        string `json:"message"`
}
