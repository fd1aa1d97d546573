package handlers

import (
	"net/http"

	"mediabibli/internal/database"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// IndexPage : tant qu'aucun utilisateur n'existe, tout mène à /setup.
func IndexPage(c *gin.Context) {
	if !database.UsersExist() {
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	sess := sessions.Default(c)
	_, authed := sess.Get("user_id").(uint)

	render(c, http.StatusOK, "index.html", gin.H{
		"isAuthed": authed,
	})
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
