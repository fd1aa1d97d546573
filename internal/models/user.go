package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSuperAdmin   UserRole = "superadmin"
	RoleLibraryAdmin UserRole = "library_admin"
	RoleReader       UserRole = "reader"
)

// Utilisateur du réseau : l'email sert d'identifiant de connexion.
type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:254;not null"`
	PasswordHash string   `gorm:"not null"`
	FirstName    string   `gorm:"size:150"`
	LastName     string   `gorm:"size:150"`
	Phone        string   `gorm:"size:20"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'reader';index"`
	LibraryID    *uint    `gorm:"index"` // renseigné uniquement pour les admins de médiathèque
	Library      *Library
	IsActive     bool      `gorm:"not null;default:true;index"`
	IsStaff      bool      `gorm:"not null;default:false"`
	DateJoined   time.Time `gorm:"index"`
}

// BeforeSave normalise l'email : la casse ne doit jamais créer deux identités.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return nil
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) IsLibraryAdmin() bool {
	return u.Role == RoleLibraryAdmin
}

func (u *User) IsReader() bool {
	return u.Role == RoleReader
}

// FullName retourne "Prénom Nom", ou l'email si les deux sont vides.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Email
	}
	return full
}
