package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/models"
)

func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userVal := r.Context().Value(helpers.ContextKeyUser)
		user, ok := userVal.(*models.User)
		if !ok || user == nil {
			http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Yönetim paneline erişmek için giriş yapmalısınız."), http.StatusFound)
			return
		}

		if user.Role != "admin" {
			log.Printf("AdminAuthMiddleware: user %s (%s) attempted to access the admin panel without the admin role", user.ID, user.Email)
			http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Bu sayfaya erişim izniniz yok."), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
