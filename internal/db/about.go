package db

// AboutContent represents the single "About" section. Body is markdown.
type AboutContent struct {
	Model
	Title             string `gorm:"not null" json:"title"`
	Subtitle          string `json:"subtitle"`
	Body              string `gorm:"type:text" json:"body"`
	ImageURL          string `json:"imageUrl"`
	Mission           string `gorm:"type:text" json:"mission"`
	Vision            string `gorm:"type:text" json:"vision"`
	YearsExperience   int    `json:"yearsExperience"`
	ClientsServed     int    `json:"clientsServed"`
	AssetsUnderAdvice string `json:"assetsUnderAdvice"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (AboutContent) TableName() string {
	return "about_contents"
}
