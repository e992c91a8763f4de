package models

type Image struct {
	ID    int64  `json:"id"`
	Image string `json:"image"` // base64
}

type Food struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Images      []Image   `json:"images"`
	Category    *Category `json:"category,omitempty"`
}

// CategoryName returns the name of the food's category, or "" when it has none.
func (f Food) CategoryName() string {
	if f.Category == nil {
		return ""
	}
	return f.Category.Name
}
