package handlers

import (
	"net/http"

	"mediabibli/internal/database"
	"mediabibli/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs : les 200 dernières entrées du journal, pour le superadmin.
func ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(200).
		Find(&logs)

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs": logs,
	})
}
