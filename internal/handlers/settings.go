package handlers

import (
	"net/http"
	"strings"

	"mediabibli/internal/database"
	"mediabibli/internal/siteconfig"

	"github.com/gin-gonic/gin"
)

// ShowSettings lit la ligne de configuration directement en base, pas
// depuis le cache : l'écran d'édition montre toujours l'état réel.
func ShowSettings(c *gin.Context) {
	cfg, err := database.GetSoloSiteConfig()
	if err != nil {
		c.String(http.StatusInternalServerError, "Configuration indisponible")
		return
	}

	render(c, http.StatusOK, "settings.html", gin.H{
		"config": cfg,
		"error":  "",
	})
}

func UpdateSettings(c *gin.Context) {
	cfg, err := database.GetSoloSiteConfig()
	if err != nil {
		c.String(http.StatusInternalServerError, "Configuration indisponible")
		return
	}

	siteName := strings.TrimSpace(c.PostForm("site_name"))
	if siteName == "" {
		render(c, http.StatusOK, "settings.html", gin.H{
			"config": cfg,
			"error":  "Le nom du site est obligatoire",
		})
		return
	}

	contactEmail := strings.TrimSpace(c.PostForm("contact_email"))
	if contactEmail != "" && !validEmail(contactEmail) {
		render(c, http.StatusOK, "settings.html", gin.H{
			"config": cfg,
			"error":  "Adresse email de contact invalide",
		})
		return
	}

	cfg.SiteName = siteName
	cfg.SiteDescription = strings.TrimSpace(c.PostForm("site_description"))
	cfg.ContactEmail = contactEmail
	cfg.ContactPhone = strings.TrimSpace(c.PostForm("contact_phone"))
	cfg.Address = strings.TrimSpace(c.PostForm("address"))
	cfg.LogoURL = strings.TrimSpace(c.PostForm("logo_url"))
	if color := strings.TrimSpace(c.PostForm("primary_color")); color != "" {
		cfg.PrimaryColor = color
	}
	cfg.MaintenanceMode = c.PostForm("maintenance_mode") == "on"

	if err := database.DB.Save(&cfg).Error; err != nil {
		render(c, http.StatusOK, "settings.html", gin.H{
			"config": cfg,
			"error":  "Erreur lors de l'enregistrement de la configuration",
		})
		return
	}

	if user, ok := currentUser(c); ok {
		database.CreateAuditLog(user.ID, "site_config", cfg.ID, "update",
			"Modification de la configuration du site")
	}

	// Seul chemin d'écriture de l'application : il invalide le cache.
	// Une écriture directe en base ailleurs laisserait l'ancien
	// instantané visible jusqu'à expiration.
	siteconfig.Invalidate()

	setFlash(c, "La configuration du site a été mise à jour !")
	c.Redirect(http.StatusFound, "/settings")
}
