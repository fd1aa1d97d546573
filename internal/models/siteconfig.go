package models

import (
	"time"

	"gorm.io/gorm"
)

// Configuration globale du site. Une seule ligne existe : la clé primaire
// est forcée à 1 à chaque sauvegarde.
type SiteConfig struct {
	ID              uint   `gorm:"primaryKey"`
	SiteName        string `gorm:"size:100;not null;default:'MediaBibli'"`
	SiteDescription string `gorm:"type:text"`
	ContactEmail    string `gorm:"size:254"`
	ContactPhone    string `gorm:"size:20"`
	Address         string `gorm:"type:text"`
	LogoURL         string `gorm:"size:500"`
	PrimaryColor    string `gorm:"size:7;not null;default:'#2563eb'"`
	MaintenanceMode bool   `gorm:"not null;default:false"`
	UpdatedAt       time.Time
}

// BeforeSave garantit l'unicité de la ligne, quel que soit l'ID initial.
func (s *SiteConfig) BeforeSave(tx *gorm.DB) error {
	s.ID = 1
	return nil
}
