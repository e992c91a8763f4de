package models

// About is the "about us" section of the store's public site.
type About struct {
	ID                int64  `json:"id,omitempty"`
	Title             string `json:"title"`
	Subtitle          string `json:"subtitle"`
	Description       string `json:"description"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	NumberOfChefs     int    `json:"numberOfChefs"`
	Image1            string `json:"image1,omitempty"`
	Image2            string `json:"image2,omitempty"`
	Image3            string `json:"image3,omitempty"`
	Image4            string `json:"image4,omitempty"`
}

// AboutImageKeys are the multipart field names of the four about images.
var AboutImageKeys = []string{"image1", "image2", "image3", "image4"}

type HeaderImage struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	BgImage  string `json:"bgImage,omitempty"`
}
