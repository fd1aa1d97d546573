package middleware

import (
	"net/http"

	"mediabibli/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth redirige les visiteurs anonymes vers la page de connexion.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin est la garde dure des écrans réservés au superadmin :
// tout autre rôle reçoit un 403 franc.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		roleStr, ok := sess.Get("role").(string)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if models.UserRole(roleStr) != models.RoleSuperAdmin {
			c.String(http.StatusForbidden, "Accès refusé")
			c.Abort()
			return
		}
		c.Next()
	}
}
