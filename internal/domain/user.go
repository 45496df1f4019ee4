package domain

import "time"

// User is owned by the wider application; this service only checks existence
// and follows the user -> images association.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Content   string    `gorm:"column:content" json:"content,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Images []Image `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }
