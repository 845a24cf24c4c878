package db

// GalleryItem 定义图库中的一张图片
type GalleryItem struct {
	Model
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"not null" json:"imageUrl"`
	ImageWidth  int    `json:"imageWidth"`
	ImageHeight int    `json:"imageHeight"`
	Category    string `gorm:"size:64;index" json:"category"`
	OrderIndex  int    `gorm:"column:order_index;index;not null;default:0" json:"orderIndex"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// Order returns the persisted display position.
func (g GalleryItem) Order() int {
	return g.OrderIndex
}

// WithOrder returns a copy placed at index.
func (g GalleryItem) WithOrder(index int) GalleryItem {
	g.OrderIndex = index
	return g
}
