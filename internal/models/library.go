package models

import "gorm.io/gorm"

// Médiathèque : l'unité d'isolation multi-tenant du réseau.
type Library struct {
	gorm.Model
	Name       string `gorm:"size:200;not null"`
	Email      string `gorm:"uniqueIndex;size:254;not null"` // sert aussi d'identifiant au compte admin associé
	Phone      string `gorm:"size:20"`
	Address    string `gorm:"type:text"`
	PostalCode string `gorm:"size:10"`
	City       string `gorm:"size:100"`
	IsActive   bool   `gorm:"not null;default:true;index"`

	Users []User

	// Annotation de lecture (COUNT corrélé), jamais migrée ni écrite.
	UserCount int64 `gorm:"->;-:migration"`
}
