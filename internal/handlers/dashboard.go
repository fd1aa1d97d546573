package handlers

import (
	"net/http"

	"mediabibli/internal/database"
	"mediabibli/internal/models"

	"github.com/gin-gonic/gin"
)

// dashboardTemplate choisit le template selon le rôle. Fonction pure,
// indépendante des gardes d'accès : les deux sont testées séparément et
// doivent rester d'accord.
func dashboardTemplate(role models.UserRole) string {
	switch role {
	case models.RoleSuperAdmin:
		return "dashboard_superadmin.html"
	case models.RoleLibraryAdmin:
		return "dashboard_library_admin.html"
	default:
		return "dashboard_reader.html"
	}
}

// Dashboard compose la vue selon le rôle. L'échec d'accès est une garde
// douce : un lecteur reçoit sa page d'attente, pas un 403.
func Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var data gin.H
	switch user.Role {
	case models.RoleSuperAdmin:
		data = superAdminContext()
	case models.RoleLibraryAdmin:
		data = libraryAdminContext(user)
	default:
		data = gin.H{}
	}

	render(c, http.StatusOK, dashboardTemplate(user.Role), data)
}

// ReaderPlaceholder : les lecteurs n'ont pas encore de tableau de bord.
func ReaderPlaceholder(c *gin.Context) {
	render(c, http.StatusOK, "dashboard_reader.html", nil)
}

type userStats struct {
	TotalUsers         int64
	ActiveUsers        int64
	TotalReaders       int64
	TotalLibraryAdmins int64
}

type libraryStats struct {
	TotalLibraries  int64
	ActiveLibraries int64
}

// superAdminContext agrège les statistiques du réseau : une seule requête
// pour les compteurs utilisateurs, une seule pour les médiathèques.
func superAdminContext() gin.H {
	var us userStats
	database.DB.Model(&models.User{}).
		Select("COUNT(*) AS total_users, " +
			"COUNT(CASE WHEN is_active THEN 1 END) AS active_users, " +
			"COUNT(CASE WHEN role = 'reader' THEN 1 END) AS total_readers, " +
			"COUNT(CASE WHEN role = 'library_admin' THEN 1 END) AS total_library_admins").
		Scan(&us)

	var ls libraryStats
	database.DB.Model(&models.Library{}).
		Select("COUNT(*) AS total_libraries, " +
			"COUNT(CASE WHEN is_active THEN 1 END) AS active_libraries").
		Scan(&ls)

	var recent []models.Library
	database.DB.Order("created_at desc").Limit(5).Find(&recent)

	return gin.H{
		"pageTitle":          "Tableau de bord",
		"pageSubtitle":       "Vue d'ensemble de votre réseau de médiathèques",
		"totalUsers":         us.TotalUsers,
		"activeUsers":        us.ActiveUsers,
		"totalReaders":       us.TotalReaders,
		"totalLibraryAdmins": us.TotalLibraryAdmins,
		"totalLibraries":     ls.TotalLibraries,
		"activeLibraries":    ls.ActiveLibraries,
		"recentLibraries":    recent,
	}
}

// libraryAdminContext : les lecteurs de la médiathèque de l'admin, dix
// affichés au plus, le total compté à part.
func libraryAdminContext(user models.User) gin.H {
	var total int64
	database.DB.Model(&models.User{}).
		Where("library_id = ? AND role = ?", user.LibraryID, models.RoleReader).
		Count(&total)

	var readers []models.User
	database.DB.
		Where("library_id = ? AND role = ?", user.LibraryID, models.RoleReader).
		Order("date_joined desc").
		Limit(10).
		Find(&readers)

	return gin.H{
		"pageTitle":    "Ma Médiathèque",
		"totalReaders": total,
		"readers":      readers,
	}
}
