package pages

import (
	"html/template"
	"net/http"

	"parvarish/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// shell is the placeholder document served for every view. The browser
// client renders the actual screens against the JSON API.
var shell = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | Parvarish</title>
</head>
<body data-view="{{.View}}"{{if .UserID}} data-user="{{.UserID}}" data-role="{{.Role}}"{{end}}>
<main id="app"><h1>{{.Title}}</h1></main>
</body>
</html>
`))

type page struct {
	Path  string
	View  string
	Title string
}

var views = []page{
	{"/", "home", "Find a daycare"},
	{"/auth/login", "login", "Sign in"},
	{"/auth/register", "register", "Create a parent account"},
	{"/daycare/register", "daycare-register", "Register your daycare"},
	{"/dashboard", "parent-dashboard", "My bookings"},
	{"/daycare/search", "daycare-search", "Search daycares"},
	{"/booking/new", "booking-new", "New booking"},
	{"/daycare/dashboard", "daycare-dashboard", "Incoming bookings"},
}

type shellData struct {
	View   string
	Title  string
	UserID string
	Role   string
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	for _, p := range views {
		r.GET(p.Path, h.serve(p))
	}
}

func (h *Handler) serve(p page) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := shellData{View: p.View, Title: p.Title}
		if userID, role, ok := middleware.Identity(c); ok {
			data.UserID = userID
			data.Role = string(role)
		}
		c.Render(http.StatusOK, render.HTML{Template: shell, Name: "page", Data: data})
	}
}
