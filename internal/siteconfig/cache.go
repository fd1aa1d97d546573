// Package siteconfig met en cache la configuration du site pour éviter une
// lecture en base à chaque requête. Le cache est un emplacement unique
// contenant un instantané immuable remplacé en bloc : aucun verrou n'est
// nécessaire.
package siteconfig

import (
	"sync/atomic"
	"time"

	"mediabibli/internal/database"
	"mediabibli/internal/models"
)

var ttl = time.Hour

type snapshot struct {
	config  models.SiteConfig
	expires time.Time
}

var slot atomic.Value

// Get retourne la configuration en cache, ou la recharge depuis la base si
// l'instantané est absent ou expiré. En cas d'échec de lecture, retourne
// (zéro, false) : les templates retombent sur les valeurs par défaut, la
// requête ne doit jamais échouer pour autant.
func Get() (models.SiteConfig, bool) {
	if s, ok := slot.Load().(*snapshot); ok && s != nil && time.Now().Before(s.expires) {
		return s.config, true
	}

	cfg, err := database.GetSoloSiteConfig()
	if err != nil {
		return models.SiteConfig{}, false
	}

	slot.Store(&snapshot{config: cfg, expires: time.Now().Add(ttl)})
	return cfg, true
}

// Invalidate vide l'emplacement. À appeler explicitement après chaque
// écriture de la configuration : une écriture qui omet cet appel laisse
// l'ancien instantané visible jusqu'à expiration.
func Invalidate() {
	slot.Store((*snapshot)(nil))
}
