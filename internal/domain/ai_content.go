package domain

import "time"

// AIContent is generated content tagged with a filter string. Read-only here.
type AIContent struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;index" json:"userId"`
	FilterStr string    `gorm:"column:filter_str;index" json:"filterStr"`
	Text      string    `gorm:"column:text" json:"text,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (AIContent) TableName() string { return "ai_contents" }

// Models lists every table the service migrates.
func Models() []interface{} {
	return []interface{}{&User{}, &Image{}, &AIContent{}}
}
