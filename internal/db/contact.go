package db

// ContactContent 保存前台联系区块的信息，全站只有一条。
type ContactContent struct {
	Model
	Title       string `gorm:"not null" json:"title"`
	Subtitle    string `json:"subtitle"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:64" json:"phone"`
	Address     string `gorm:"type:text" json:"address"`
	OfficeHours string `json:"officeHours"`
	MapEmbedURL string `gorm:"size:1024" json:"mapEmbedUrl"`
}

// TableName 返回自定义表名，避免冲突
func (ContactContent) TableName() string {
	return "contact_contents"
}
