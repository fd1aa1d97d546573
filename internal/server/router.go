package server

import (
	"html/template"
	"time"

	"mediabibli/internal/config"
	"mediabibli/internal/handlers"
	"mediabibli/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"eq":  func(a, b interface{}) bool { return a == b },
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"formatDate": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
	}
}

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")

	r.SetFuncMap(TemplateFuncs())
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("mediabibli_session", store))

	RegisterRoutes(r)

	return r
}

// RegisterRoutes pose la chaîne de gardes et les routes. L'ordre des
// gardes est fixe : session → utilisateur → configuration → maintenance,
// puis par route : authentification → rôle → handler.
func RegisterRoutes(r *gin.Engine) {
	r.Use(middleware.InjectUser())
	r.Use(middleware.InjectSiteConfig())
	r.Use(middleware.MaintenanceGate())

	// ACCUEIL
	r.GET("/", handlers.IndexPage)

	// COMPTES
	r.GET("/setup", handlers.ShowSetup)
	r.POST("/setup", handlers.Setup)
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/password-change", handlers.ShowPasswordChange)
	auth.POST("/password-change", handlers.ChangePassword)

	// DASHBOARD — garde douce : la vue s'adapte au rôle dans le handler
	auth.GET("/dashboard", handlers.Dashboard)
	auth.GET("/dashboard/reader", handlers.ReaderPlaceholder)

	// MÉDIATHÈQUES
	auth.GET("/libraries",
		middleware.RequireSuperAdmin(),
		handlers.ListLibraries,
	)
	auth.GET("/libraries/create",
		middleware.RequireSuperAdmin(),
		handlers.ShowCreateLibrary,
	)
	auth.POST("/libraries/create",
		middleware.RequireSuperAdmin(),
		handlers.CreateLibrary,
	)
	auth.GET("/libraries/:id", handlers.ShowLibraryDetail)

	// modification : superadmin, ou admin de sa propre médiathèque
	// (périmètre vérifié dans le handler, hors périmètre => 404)
	auth.GET("/libraries/:id/edit", handlers.ShowEditLibrary)
	auth.POST("/libraries/:id/edit", handlers.UpdateLibrary)

	// CONFIGURATION DU SITE
	auth.GET("/settings",
		middleware.RequireSuperAdmin(),
		handlers.ShowSettings,
	)
	auth.POST("/settings",
		middleware.RequireSuperAdmin(),
		handlers.UpdateSettings,
	)

	// JOURNAL D'AUDIT
	auth.GET("/audit",
		middleware.RequireSuperAdmin(),
		handlers.ListAuditLogs,
	)

	// HEALTHCHECK
	r.GET("/health", handlers.HealthCheck)
}
