package other

import (
	"net/url"

	"github.com/pompadepo/pompa-market/app/utils/breadcrumb"
)

type UserForTemplate struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

type BasePageData struct {
	Title         string
	IsLoggedIn    bool
	User          *UserForTemplate
	UserID        string
	CSRFToken     string
	Message       string
	MessageStatus string
	Query         url.Values
	Breadcrumbs   []breadcrumb.Breadcrumb
	IsAdminPage   bool
	IsAdminRoute  bool
	CurrentPath   string
}
