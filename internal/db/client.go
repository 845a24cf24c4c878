package db

// Client 定义“合作客户”区块中的一家客户机构。
type Client struct {
	Model
	Name        string `gorm:"not null" json:"name"`
	LogoURL     string `json:"logoUrl"`
	WebsiteURL  string `json:"websiteUrl"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"column:order_index;index;not null;default:0" json:"orderIndex"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (Client) TableName() string {
	return "clients"
}

// Order returns the persisted display position.
func (c Client) Order() int {
	return c.OrderIndex
}

// WithOrder returns a copy placed at index.
func (c Client) WithOrder(index int) Client {
	c.OrderIndex = index
	return c
}
