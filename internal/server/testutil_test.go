package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mediabibli/internal/database"
	"mediabibli/internal/models"
	"mediabibli/internal/siteconfig"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	r  *gin.Engine
	db *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	database.DB = db

	// Le cache de configuration est global au processus : sans remise à
	// zéro, un test verrait l'instantané de la base du test précédent.
	siteconfig.Invalidate()
	t.Cleanup(siteconfig.Invalidate)

	r := gin.New()
	r.SetFuncMap(TemplateFuncs())
	r.LoadHTMLGlob("../../web/templates/*.html")

	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("mediabibli_session", store))

	RegisterRoutes(r)

	return &testEnv{r: r, db: db}
}

// do joue une requête en transportant les cookies de session fournis.
func (e *testEnv) do(method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// updateCookies remplace les cookies réécrits par la réponse : le store de
// session réencode le cookie à chaque Save.
func updateCookies(cookies []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	for _, ck := range w.Result().Cookies() {
		replaced := false
		for i, existing := range cookies {
			if existing.Name == ck.Name {
				cookies[i] = ck
				replaced = true
				break
			}
		}
		if !replaced {
			cookies = append(cookies, ck)
		}
	}
	return cookies
}

// login authentifie l'utilisateur et retourne ses cookies de session.
func (e *testEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	w := e.do(http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code, "échec de connexion pour %s", email)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))

	return updateCookies(nil, w)
}

//
// Fixtures
//

func createSuperAdmin(t *testing.T, email, password string) models.User {
	t.Helper()
	user := models.User{Email: email, FirstName: "Super", LastName: "Admin"}
	require.NoError(t, database.CreateSuperUser(&user, password))
	return user
}

func createReader(t *testing.T, email, password string, libraryID *uint) models.User {
	t.Helper()
	user := models.User{Email: email, Role: models.RoleReader, LibraryID: libraryID}
	require.NoError(t, database.CreateUser(&user, password))
	return user
}

func createLibrary(t *testing.T, name, email, password string) models.Library {
	t.Helper()
	library := models.Library{Name: name, Email: email, IsActive: true}
	require.NoError(t, database.CreateLibraryWithAdmin(&library, password))
	return library
}
