package db

import "database/sql/driver"

// HeroColors 保存首屏文字与徽标的配色，整体以 JSON 存储在一列中。
type HeroColors struct {
	TitleColor            string `json:"titleColor" yaml:"titleColor"`
	SubtitleColor         string `json:"subtitleColor" yaml:"subtitleColor"`
	DescriptionColor      string `json:"descriptionColor" yaml:"descriptionColor"`
	TrustedBadgeTextColor string `json:"trustedBadgeTextColor" yaml:"trustedBadgeTextColor"`
	TrustedBadgeBgColor   string `json:"trustedBadgeBgColor" yaml:"trustedBadgeBgColor"`
}

// Value stores the colors as a JSON document.
func (c HeroColors) Value() (driver.Value, error) {
	return jsonValue(c)
}

// Scan reads the JSON document written by Value.
func (c *HeroColors) Scan(src interface{}) error {
	return jsonScan(src, c)
}

// HeroSection 定义首页首屏文案。可以同时存在多条，
// 前台展示最近更新的已发布记录。
type HeroSection struct {
	Model
	Title       string        `gorm:"not null" json:"title"`
	Subtitle    string        `json:"subtitle"`
	Description string        `gorm:"type:text" json:"description"`
	TrustedText string        `json:"trustedText"`
	Status      PublishStatus `gorm:"size:16;index;not null;default:draft" json:"status"`
	Colors      HeroColors    `gorm:"type:text" json:"colors"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (HeroSection) TableName() string {
	return "hero_sections"
}

// PublishState returns the section's visibility.
func (h HeroSection) PublishState() PublishStatus {
	return h.Status
}

// HeroSlide 定义首页轮播图。OrderIndex 在整个集合内（草稿与已发布一起）
// 从 0 开始连续编号。
type HeroSlide struct {
	Model
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	ImageURL    string        `json:"imageUrl"`
	OrderIndex  int           `gorm:"column:order_index;index;not null;default:0" json:"orderIndex"`
	Status      PublishStatus `gorm:"size:16;index;not null;default:draft" json:"status"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (HeroSlide) TableName() string {
	return "hero_slides"
}

// PublishState returns the slide's visibility.
func (s HeroSlide) PublishState() PublishStatus {
	return s.Status
}

// Order returns the persisted display position.
func (s HeroSlide) Order() int {
	return s.OrderIndex
}

// WithOrder returns a copy placed at index.
func (s HeroSlide) WithOrder(index int) HeroSlide {
	s.OrderIndex = index
	return s
}
