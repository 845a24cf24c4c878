package db

// ServiceOffering 定义前台“服务”区块中的一项业务。
type ServiceOffering struct {
	Model
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Icon        string     `json:"icon"`
	Features    StringList `gorm:"type:text" json:"features"`
	OrderIndex  int        `gorm:"column:order_index;index;not null;default:0" json:"orderIndex"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (ServiceOffering) TableName() string {
	return "service_offerings"
}

// Order returns the persisted display position.
func (s ServiceOffering) Order() int {
	return s.OrderIndex
}

// WithOrder returns a copy placed at index.
func (s ServiceOffering) WithOrder(index int) ServiceOffering {
	s.OrderIndex = index
	return s
}
