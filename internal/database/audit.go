package database

import "mediabibli/internal/models"

// CreateAuditLog écrit une entrée de journal. Le journal ne doit jamais
// faire échouer l'opération qu'il trace : l'erreur est ignorée.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}
