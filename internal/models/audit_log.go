package models

import "gorm.io/gorm"

// Journal des mutations sensibles (médiathèques, configuration).
type AuditLog struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	User     *User
	Entity   string `gorm:"size:50;not null"`
	EntityID uint   `gorm:"index"`
	Action   string `gorm:"size:20;not null"`
	Details  string `gorm:"type:text"`
}
