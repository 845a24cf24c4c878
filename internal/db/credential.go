package db

// Credential 定义资质与认证，例如牌照、奖项。
type Credential struct {
	Model
	Title       string `gorm:"not null" json:"title"`
	Issuer      string `json:"issuer"`
	Year        int    `json:"year"`
	Description string `gorm:"type:text" json:"description"`
	IconURL     string `json:"iconUrl"`
	OrderIndex  int    `gorm:"column:order_index;index;not null;default:0" json:"orderIndex"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (Credential) TableName() string {
	return "credentials"
}

// Order returns the persisted display position.
func (c Credential) Order() int {
	return c.OrderIndex
}

// WithOrder returns a copy placed at index.
func (c Credential) WithOrder(index int) Credential {
	c.OrderIndex = index
	return c
}
