package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.sessionStore.GetUserID(r) != "" {
		http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Giriş Yap",
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Form okunamadı."), http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("E-posta ve şifre zorunludur."), http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("LoginPost: failed to look up user %s: %v", email, err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Giriş sırasında bir hata oluştu."), http.StatusSeeOther)
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("E-posta veya şifre hatalı."), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: failed to save session for %s: %v", user.ID, err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Oturum başlatılamadı."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
