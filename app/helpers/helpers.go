package helpers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	CSRFTokenKey     contextKey = "csrfToken"
)

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s alanı zorunludur.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s geçerli bir e-posta adresi olmalıdır.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s sayısal olmalıdır.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s en az %s karakter/değer olmalıdır.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s en fazla %s karakter/değer olmalıdır.", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s geçersiz bir değer içeriyor.", err.Field())
		default:
			errorMessages[field] = fmt.Sprintf("%s alanında %s doğrulaması başarısız.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

func SetCookie(w http.ResponseWriter, name, value string, expires time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(expires),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return ""
	}
	return string(bytes)
}
