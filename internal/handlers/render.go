package handlers

import (
	"mediabibli/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render est une enveloppe de c.HTML qui pousse dans chaque template
// l'utilisateur courant, la configuration du site et le message flash.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if user, ok := currentUser(c); ok {
		data["CurrentUser"] = user
		data["CurrentUserRole"] = user.Role
	}

	if cfg, ok := c.Get("SiteConfig"); ok {
		data["SiteConfig"] = cfg
	}

	if flash := popFlash(c); flash != "" {
		data["Flash"] = flash
	}

	c.HTML(status, tmpl, data)
}

// currentUser relit l'utilisateur posé par middleware.InjectUser.
func currentUser(c *gin.Context) (models.User, bool) {
	if uVal, ok := c.Get("CurrentUser"); ok {
		if u, ok := uVal.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}

func setFlash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.Set("flash", msg)
	_ = sess.Save()
}

func popFlash(c *gin.Context) string {
	sess := sessions.Default(c)
	msg, _ := sess.Get("flash").(string)
	if msg != "" {
		sess.Delete("flash")
		_ = sess.Save()
	}
	return msg
}
