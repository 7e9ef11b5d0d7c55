// Package views renders the HTML pages. Templates are plain html/template
// files embedded in the binary and exposed as templ components, so handlers
// can return them through handler.Templ.
package views

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/intellicall/handler"
	"github.com/dmitrymomot/intellicall/svc/customer"
)

//go:embed templates/*.html
var files embed.FS

// FlashKey is the cookie flash key used for notices shown on the admin page.
const FlashKey = "notice"

const (
	FlashSuccess = "success"
	FlashError   = "danger"
)

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("Jan 2, 2006 15:04 UTC")
	},
}

var (
	landingTmpl   = page("landing.html")
	privacyTmpl   = page("privacy.html")
	loginTmpl     = page("login.html")
	dashboardTmpl = page("dashboard.html")
	adminTmpl     = page("admin.html")
	errorTmpl     = page("error.html")
	toastTmpl     = template.Must(template.New("toast.html").Funcs(funcs).ParseFS(files, "templates/toast.html"))
)

func page(name string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name))
}

// Page is the data every page layout needs.
type Page struct {
	Title         string
	Authenticated bool
}

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type LoginParams struct {
	Page
	Email string
	Error string
}

type DashboardParams struct {
	Page
	Customer  customer.Profile
	Dashboard customer.Dashboard
	Saved     bool
}

type AdminParams struct {
	Page
	Customers []customer.Profile
	Flash     *Flash
}

func Landing(authenticated bool) templ.Component {
	return templ.FromGoHTML(landingTmpl, Page{Title: "Home", Authenticated: authenticated})
}

func Privacy(authenticated bool) templ.Component {
	return templ.FromGoHTML(privacyTmpl, Page{Title: "Privacy Policy", Authenticated: authenticated})
}

func Login(p LoginParams) templ.Component {
	p.Title = "Login"
	return templ.FromGoHTML(loginTmpl, p)
}

func Dashboard(p DashboardParams) templ.Component {
	p.Title = "Dashboard"
	p.Authenticated = true
	return templ.FromGoHTML(dashboardTmpl, p)
}

// DashboardStatus renders only the #dashboard-status fragment.
func DashboardStatus(p DashboardParams) templ.Component {
	return templ.FromGoHTML(dashboardTmpl.Lookup("dashboard_status"), p)
}

func Admin(p AdminParams) templ.Component {
	p.Title = "Admin"
	p.Authenticated = true
	return templ.FromGoHTML(adminTmpl, p)
}

type errorPageData struct {
	Page
	handler.ErrorPageParams
}

func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return templ.FromGoHTML(errorTmpl, errorPageData{
		Page:            Page{Title: http.StatusText(p.StatusCode)},
		ErrorPageParams: p,
	})
}

func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.FromGoHTML(toastTmpl, p)
}

// NotFound is the HTML 404 page.
func NotFound() templ.Component {
	return ErrorPage(handler.ErrorPageParams{
		Error:      "The page you are looking for does not exist.",
		StatusCode: http.StatusNotFound,
	})
}

// ErrorHandler renders page errors with ErrorPage, or ErrorToast for Datastar requests.
func ErrorHandler(log *slog.Logger) handler.ErrorHandler[handler.Context] {
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  ErrorPage,
		ErrorToast: ErrorToast,
	})
}
