package domain

import "time"

// Image is the metadata row for one stored blob. Img holds only the generated
// filename; absolute URLs are derived per request.
type Image struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;index;not null" json:"userId"`
	Img       string    `gorm:"column:img;uniqueIndex;not null" json:"img"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

func (Image) TableName() string { return "images" }
