package database

import (
	"errors"
	"strings"

	"mediabibli/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailRequired = errors.New("email is required")

// CreateUser hache le mot de passe et enregistre l'utilisateur.
// Le rôle par défaut est lecteur.
func CreateUser(user *models.User, password string) error {
	return createUser(DB, user, password)
}

// CreateSuperUser force le rôle superadmin et le statut staff.
func CreateSuperUser(user *models.User, password string) error {
	user.Role = models.RoleSuperAdmin
	user.IsStaff = true
	return createUser(DB, user, password)
}

func createUser(tx *gorm.DB, user *models.User, password string) error {
	if strings.TrimSpace(user.Email) == "" {
		return ErrEmailRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if user.Role == "" {
		user.Role = models.RoleReader
	}
	if user.Role == models.RoleSuperAdmin {
		user.IsStaff = true
	}
	user.IsActive = true

	return tx.Create(user).Error
}

// FindUserByEmail normalise la casse avant la recherche.
func FindUserByEmail(email string) (models.User, error) {
	var user models.User
	err := DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	return user, err
}

// CheckPassword compare le mot de passe en clair au hash stocké.
func CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// SetPassword remplace le hash et sauvegarde l'utilisateur.
func SetPassword(user *models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return DB.Save(user).Error
}

// UsersExist répond à la question du premier démarrage (/setup).
func UsersExist() bool {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return true // en cas de doute, ne pas rouvrir /setup
	}
	return count > 0
}
