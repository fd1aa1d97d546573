package middleware

import (
	"net/http"

	"mediabibli/internal/models"
	"mediabibli/internal/siteconfig"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectSiteConfig pousse l'instantané de configuration dans le contexte.
// En cas d'échec de lecture, la clé est simplement absente : les templates
// utilisent alors leurs valeurs par défaut.
func InjectSiteConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg, ok := siteconfig.Get(); ok {
			c.Set("SiteConfig", cfg)
		}
		c.Next()
	}
}

// MaintenanceGate affiche la page de maintenance quand le mode est actif.
// Les superadmins passent, ainsi que les routes nécessaires pour se
// connecter et désactiver le mode.
func MaintenanceGate() gin.HandlerFunc {
	skip := map[string]struct{}{
		"/login":    {},
		"/logout":   {},
		"/setup":    {},
		"/settings": {},
		"/health":   {},
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		cfg, ok := siteconfig.Get()
		if !ok || !cfg.MaintenanceMode {
			c.Next()
			return
		}

		sess := sessions.Default(c)
		if roleStr, _ := sess.Get("role").(string); models.UserRole(roleStr) == models.RoleSuperAdmin {
			c.Next()
			return
		}

		c.HTML(http.StatusServiceUnavailable, "maintenance.html", gin.H{
			"SiteConfig": cfg,
		})
		c.Abort()
	}
}
