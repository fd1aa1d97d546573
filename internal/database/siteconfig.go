package database

import "mediabibli/internal/models"

// GetSoloSiteConfig retourne la ligne unique de configuration, en la créant
// avec ses valeurs par défaut au premier accès.
func GetSoloSiteConfig() (models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := DB.
		Where(models.SiteConfig{ID: 1}).
		Attrs(models.SiteConfig{SiteName: "MediaBibli", PrimaryColor: "#2563eb"}).
		FirstOrCreate(&cfg).Error
	return cfg, err
}
