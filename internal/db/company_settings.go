package db

import "database/sql/driver"

// SocialLinks groups the company's social profiles.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	Twitter   string `json:"twitter" yaml:"twitter"`
	Facebook  string `json:"facebook" yaml:"facebook"`
	Instagram string `json:"instagram" yaml:"instagram"`
}

// Value implements driver.Valuer.
func (s SocialLinks) Value() (driver.Value, error) {
	return jsonValue(s)
}

// Scan implements sql.Scanner.
func (s *SocialLinks) Scan(src interface{}) error {
	return jsonScan(src, s)
}

// ThemeColors 定义站点主题色。
type ThemeColors struct {
	PrimaryColor    string `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor" yaml:"secondaryColor"`
	AccentColor     string `json:"accentColor" yaml:"accentColor"`
	BackgroundColor string `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string `json:"textColor" yaml:"textColor"`
}

// Value implements driver.Valuer.
func (t ThemeColors) Value() (driver.Value, error) {
	return jsonValue(t)
}

// Scan implements sql.Scanner.
func (t *ThemeColors) Scan(src interface{}) error {
	return jsonScan(src, t)
}

// CompanySettings 存储品牌、SEO 默认值、社交链接与主题色。
// 同一时间只有一条 IsActive=true 的记录生效，按 CreatedAt 取最新。
type CompanySettings struct {
	Model
	CompanyName    string      `gorm:"size:200;not null" json:"companyName"`
	Tagline        string      `json:"tagline"`
	LogoURL        string      `json:"logoUrl"`
	FaviconURL     string      `json:"faviconUrl"`
	SEOTitle       string      `gorm:"column:seo_title" json:"seoTitle"`
	SEODescription string      `gorm:"column:seo_description;type:text" json:"seoDescription"`
	SEOKeywords    StringList  `gorm:"column:seo_keywords;type:text" json:"seoKeywords"`
	Social         SocialLinks `gorm:"type:text" json:"social"`
	Theme          ThemeColors `gorm:"type:text" json:"theme"`
	IsActive       bool        `gorm:"index;not null;default:false" json:"isActive"`
}

// TableName 自定义表名以保持命名一致。
func (CompanySettings) TableName() string {
	return "company_settings"
}
