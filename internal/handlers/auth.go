package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"mediabibli/internal/database"
	"mediabibli/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const minPasswordLength = 8

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// openSession enregistre l'identité en session après authentification.
func openSession(c *gin.Context, user models.User) {
	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	_ = sess.Save()
}

//
// CONFIGURATION INITIALE (/setup)
//

// ShowSetup n'est accessible que tant qu'aucun utilisateur n'existe.
func ShowSetup(c *gin.Context) {
	if database.UsersExist() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "setup.html", gin.H{"error": ""})
}

// Setup crée le premier superadmin puis le connecte dans la foulée.
func Setup(c *gin.Context) {
	if database.UsersExist() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	firstName := strings.TrimSpace(c.PostForm("first_name"))
	lastName := strings.TrimSpace(c.PostForm("last_name"))
	password1 := c.PostForm("password1")
	password2 := c.PostForm("password2")

	if !validEmail(email) {
		renderSetupError(c, "Adresse email invalide")
		return
	}
	if firstName == "" || lastName == "" {
		renderSetupError(c, "Le prénom et le nom sont obligatoires")
		return
	}
	if len(password1) < minPasswordLength {
		renderSetupError(c, "Le mot de passe doit contenir au moins 8 caractères")
		return
	}
	if password1 != password2 {
		renderSetupError(c, "Les mots de passe ne correspondent pas")
		return
	}

	user := models.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := database.CreateSuperUser(&user, password1); err != nil {
		renderSetupError(c, "Erreur lors de la création du compte")
		return
	}

	openSession(c, user)
	c.Redirect(http.StatusFound, "/")
}

func renderSetupError(c *gin.Context, msg string) {
	render(c, http.StatusOK, "setup.html", gin.H{"error": msg})
}

//
// CONNEXION / DÉCONNEXION
//

// ShowLogin redirige les utilisateurs déjà connectés vers leur dashboard.
func ShowLogin(c *gin.Context) {
	sess := sessions.Default(c)
	if sess.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

// Login authentifie par email + mot de passe. Le message d'échec est
// volontairement le même quelle que soit la cause (email inconnu, mauvais
// mot de passe, compte désactivé).
func Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := database.FindUserByEmail(email)
	if err != nil || !database.CheckPassword(&user, password) || !user.IsActive {
		render(c, http.StatusOK, "login.html", gin.H{
			"error": "Email ou mot de passe incorrect",
		})
		return
	}

	openSession(c, user)
	c.Redirect(http.StatusFound, "/dashboard")
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/")
}

//
// CHANGEMENT DE MOT DE PASSE
//

func ShowPasswordChange(c *gin.Context) {
	render(c, http.StatusOK, "password_change.html", gin.H{"error": ""})
}

func ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	oldPassword := c.PostForm("old_password")
	newPassword1 := c.PostForm("new_password1")
	newPassword2 := c.PostForm("new_password2")

	if !database.CheckPassword(&user, oldPassword) {
		renderPasswordChangeError(c, "Ancien mot de passe incorrect")
		return
	}
	if len(newPassword1) < minPasswordLength {
		renderPasswordChangeError(c, "Le mot de passe doit contenir au moins 8 caractères")
		return
	}
	if newPassword1 != newPassword2 {
		renderPasswordChangeError(c, "Les mots de passe ne correspondent pas")
		return
	}

	if err := database.SetPassword(&user, newPassword1); err != nil {
		renderPasswordChangeError(c, "Erreur lors de la modification du mot de passe")
		return
	}

	setFlash(c, "Votre mot de passe a été modifié avec succès !")
	c.Redirect(http.StatusFound, "/")
}

func renderPasswordChangeError(c *gin.Context, msg string) {
	render(c, http.StatusOK, "password_change.html", gin.H{"error": msg})
}
