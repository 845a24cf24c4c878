package db

// TeamMember 定义团队成员，OrderIndex 决定前台展示顺序。
type TeamMember struct {
	Model
	Name        string `gorm:"not null" json:"name"`
	Position    string `json:"position"`
	Bio         string `gorm:"type:text" json:"bio"`
	ImageURL    string `json:"imageUrl"`
	LinkedInURL string `json:"linkedinUrl"`
	Email       string `json:"email"`
	OrderIndex  int    `gorm:"column:order_index;index;not null;default:0" json:"orderIndex"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (TeamMember) TableName() string {
	return "team_members"
}

// Order returns the persisted display position.
func (m TeamMember) Order() int {
	return m.OrderIndex
}

// WithOrder returns a copy placed at index.
func (m TeamMember) WithOrder(index int) TeamMember {
	m.OrderIndex = index
	return m
}
