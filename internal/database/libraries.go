package database

import (
	"mediabibli/internal/models"

	"gorm.io/gorm"
)

// CreateLibraryWithAdmin crée la médiathèque et son compte administrateur
// dans une même transaction : soit les deux lignes existent, soit aucune.
// Le compte admin reprend l'email de la médiathèque comme identifiant.
func CreateLibraryWithAdmin(library *models.Library, password string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(library).Error; err != nil {
			return err
		}

		admin := models.User{
			Email:     library.Email,
			FirstName: library.Name,
			LastName:  "Admin",
			Phone:     library.Phone,
			Role:      models.RoleLibraryAdmin,
			LibraryID: &library.ID,
		}
		return createUser(tx, &admin, password)
	})
}

// ScopedLibraries restreint la requête au périmètre du rôle : toutes les
// médiathèques pour un superadmin, uniquement la sienne pour un admin de
// médiathèque. Un accès hors périmètre se solde par "introuvable", jamais
// par "interdit" : les enregistrements des autres tenants n'existent pas
// de son point de vue.
func ScopedLibraries(user models.User) *gorm.DB {
	if user.IsSuperAdmin() {
		return DB.Model(&models.Library{})
	}
	if user.IsLibraryAdmin() && user.LibraryID != nil {
		return DB.Model(&models.Library{}).Where("libraries.id = ?", *user.LibraryID)
	}
	return DB.Model(&models.Library{}).Where("1 = 0")
}
