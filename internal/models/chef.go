package models

type Chef struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Designation  string `json:"designation"`
	Image        string `json:"image,omitempty"`
	FacebookURL  string `json:"facebookUrl,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
}
