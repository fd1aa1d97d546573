package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"mediabibli/internal/database"
	"mediabibli/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const librariesPageSize = 25

//
// LISTE (superadmin)
//

func ListLibraries(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var total int64
	database.DB.Model(&models.Library{}).Count(&total)

	var libraries []models.Library
	database.DB.
		Order("created_at desc").
		Limit(librariesPageSize).
		Offset((page - 1) * librariesPageSize).
		Find(&libraries)

	totalPages := int((total + librariesPageSize - 1) / librariesPageSize)

	render(c, http.StatusOK, "library_list.html", gin.H{
		"libraries":  libraries,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
	})
}

//
// CRÉATION (superadmin) : médiathèque + compte admin en une transaction
//

// ShowCreateLibrary affiche le formulaire, et une seule fois le mot de
// passe laissé en session par le POST précédent. La clé est retirée dès
// cette lecture : le secret ne survit pas à un rechargement.
func ShowCreateLibrary(c *gin.Context) {
	data := gin.H{"error": ""}

	sess := sessions.Default(c)
	if password, ok := sess.Get("generated_password").(string); ok && password != "" {
		sess.Delete("generated_password")
		_ = sess.Save()
		data["generatedPassword"] = password
	}

	render(c, http.StatusOK, "library_form.html", data)
}

func CreateLibrary(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	phone := strings.TrimSpace(c.PostForm("phone"))
	address := strings.TrimSpace(c.PostForm("address"))
	postalCode := strings.TrimSpace(c.PostForm("postal_code"))
	city := strings.TrimSpace(c.PostForm("city"))
	password1 := c.PostForm("password1")
	password2 := c.PostForm("password2")

	if name == "" {
		renderLibraryFormError(c, "Le nom de la médiathèque est obligatoire")
		return
	}
	if !validEmail(email) {
		renderLibraryFormError(c, "Adresse email invalide")
		return
	}
	if len(password1) < minPasswordLength {
		renderLibraryFormError(c, "Le mot de passe doit contenir au moins 8 caractères")
		return
	}
	if password1 != password2 {
		renderLibraryFormError(c, "Les mots de passe ne correspondent pas")
		return
	}

	// L'email sert aussi d'identifiant au compte admin : il doit être libre
	// des deux côtés. Vérifié ici pour un message propre, l'index unique
	// reste le filet de sécurité.
	var count int64
	database.DB.Model(&models.Library{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		renderLibraryFormError(c, "Une médiathèque avec cette adresse email existe déjà")
		return
	}
	database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		renderLibraryFormError(c, "Un utilisateur avec cette adresse email existe déjà")
		return
	}

	library := models.Library{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Address:    address,
		PostalCode: postalCode,
		City:       city,
		IsActive:   true,
	}

	if err := database.CreateLibraryWithAdmin(&library, password1); err != nil {
		renderLibraryFormError(c, "Erreur lors de l'enregistrement de la médiathèque")
		return
	}

	if user, ok := currentUser(c); ok {
		database.CreateAuditLog(user.ID, "library", library.ID, "create",
			"Création de la médiathèque : "+library.Name)
	}

	// Affichage unique du mot de passe sur le GET qui suit. Deux onglets
	// qui déclenchent ce GET en même temps peuvent tous deux voir le
	// secret avant le retrait : limitation connue, assumée.
	sess := sessions.Default(c)
	sess.Set("generated_password", password1)
	_ = sess.Save()

	setFlash(c, fmt.Sprintf("La médiathèque '%s' a été créée avec succès !", library.Name))
	c.Redirect(http.StatusFound, "/libraries/create")
}

func renderLibraryFormError(c *gin.Context, msg string) {
	render(c, http.StatusOK, "library_form.html", gin.H{"error": msg})
}

//
// DÉTAIL (tout utilisateur connecté)
//

func ShowLibraryDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Médiathèque introuvable")
		return
	}

	// Compteur d'utilisateurs annoté dans la même requête.
	var library models.Library
	err = database.DB.
		Select("libraries.*, (SELECT COUNT(*) FROM users WHERE users.library_id = libraries.id AND users.deleted_at IS NULL) AS user_count").
		First(&library, id).Error
	if err != nil {
		c.String(http.StatusNotFound, "Médiathèque introuvable")
		return
	}

	render(c, http.StatusOK, "library_detail.html", gin.H{
		"library": library,
	})
}

//
// MODIFICATION (superadmin, ou admin de sa propre médiathèque)
//

// canManageLibrary : superadmin, ou admin de médiathèque rattaché.
func canManageLibrary(user models.User) bool {
	if user.IsSuperAdmin() {
		return true
	}
	return user.IsLibraryAdmin() && user.LibraryID != nil
}

// fetchScopedLibrary récupère la médiathèque dans le périmètre du rôle.
// Hors périmètre, la réponse est identique à un id inexistant.
func fetchScopedLibrary(c *gin.Context, user models.User) (models.Library, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Médiathèque introuvable")
		return models.Library{}, false
	}

	var library models.Library
	if err := database.ScopedLibraries(user).First(&library, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("failed to fetch library %d: %v", id, err)
		}
		c.String(http.StatusNotFound, "Médiathèque introuvable")
		return models.Library{}, false
	}

	return library, true
}

func ShowEditLibrary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok || !canManageLibrary(user) {
		c.String(http.StatusForbidden, "Accès refusé")
		return
	}

	library, ok := fetchScopedLibrary(c, user)
	if !ok {
		return
	}

	render(c, http.StatusOK, "library_update.html", gin.H{
		"library": library,
		"error":   "",
	})
}

func UpdateLibrary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok || !canManageLibrary(user) {
		c.String(http.StatusForbidden, "Accès refusé")
		return
	}

	library, ok := fetchScopedLibrary(c, user)
	if !ok {
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		render(c, http.StatusOK, "library_update.html", gin.H{
			"library": library,
			"error":   "Le nom de la médiathèque est obligatoire",
		})
		return
	}

	// L'email reste l'identifiant du compte admin : il ne se modifie pas ici.
	library.Name = name
	library.Phone = strings.TrimSpace(c.PostForm("phone"))
	library.Address = strings.TrimSpace(c.PostForm("address"))
	library.PostalCode = strings.TrimSpace(c.PostForm("postal_code"))
	library.City = strings.TrimSpace(c.PostForm("city"))
	library.IsActive = c.PostForm("is_active") == "on"

	if err := database.DB.Save(&library).Error; err != nil {
		render(c, http.StatusOK, "library_update.html", gin.H{
			"library": library,
			"error":   "Erreur lors de l'enregistrement de la médiathèque",
		})
		return
	}

	database.CreateAuditLog(user.ID, "library", library.ID, "update",
		"Modification de la médiathèque : "+library.Name)

	setFlash(c, fmt.Sprintf("'%s' a été mis à jour avec succès !", library.Name))

	// Destination selon le rôle : liste pour le superadmin, dashboard
	// pour l'admin de médiathèque.
	if user.IsSuperAdmin() {
		c.Redirect(http.StatusFound, "/libraries")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
