// Package quickbiteserver is the HTTP surface of the QuickBite API.
package quickbiteserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/quickbite-api/internal/shared/access"
	apierrors "github.com/Apurer/quickbite-api/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	AuthAPI  AuthAPI
	MenuAPI  MenuAPI
	OrderAPI OrderAPI
}

// RouterOptions tunes NewRouter. The zero value serves the API with the
// default access policy and no static assets.
type RouterOptions struct {
	Policy *access.Policy
	// Middleware runs ahead of access control, for tracing and logging.
	Middleware []gin.HandlerFunc
	Metrics    *Metrics
	StaticDir  string
}

// NewRouter returns a new router. Access control uses the authenticator
// of handleFunctions.AuthAPI.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	RegisterValidations()

	policy := access.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(opts.Middleware...)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(AccessControl(handleFunctions.AuthAPI.auth, policy))

	for _, route := range getRoutes(handleFunctions, opts) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	if opts.StaticDir != "" {
		mountStatic(router, opts.StaticDir)
	}
	router.NoRoute(staticPages(opts.StaticDir))
	return router
}

// DefaultHandleFunc answers routes that are declared but not implemented.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions, opts RouterOptions) []Route {
	routes := []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"Register", http.MethodPost, "/auth/register", handleFunctions.AuthAPI.Register},
		{"Login", http.MethodPost, "/auth/login", handleFunctions.AuthAPI.Login},
		{"Logout", http.MethodPost, "/auth/logout", handleFunctions.AuthAPI.Logout},
		{"Current", http.MethodGet, "/auth/current", handleFunctions.AuthAPI.Current},
		{"ChangeRole", http.MethodPut, "/auth/changeRole/:id", handleFunctions.AuthAPI.ChangeRole},
		{"ListUsers", http.MethodGet, "/auth", handleFunctions.AuthAPI.ListUsers},
		{"ListMenu", http.MethodGet, "/menu", handleFunctions.MenuAPI.ListMenu},
		{"AddItem", http.MethodPost, "/menu", handleFunctions.MenuAPI.AddItem},
		{"UpdateItem", http.MethodPut, "/menu/:id", handleFunctions.MenuAPI.UpdateItem},
		{"DeleteItem", http.MethodDelete, "/menu/:id", handleFunctions.MenuAPI.DeleteItem},
		{"PlaceOrder", http.MethodPost, "/order/place", handleFunctions.OrderAPI.PlaceOrder},
		{"GetOrdersByUser", http.MethodGet, "/order/user/:userId", handleFunctions.OrderAPI.GetOrdersByUser},
		{"GetAllOrders", http.MethodGet, "/order/all", handleFunctions.OrderAPI.GetAllOrders},
		{"GetPendingOrders", http.MethodGet, "/order/pending", handleFunctions.OrderAPI.GetPendingOrders},
		{"UpdateStatus", http.MethodPut, "/order/:id/status", handleFunctions.OrderAPI.UpdateStatus},
	}
	if opts.Metrics != nil {
		routes = append(routes, Route{"Metrics", http.MethodGet, "/admin/metrics", opts.Metrics.Handler()})
	}
	return routes
}

func mountStatic(router *gin.Engine, dir string) {
	router.Static("/css", filepath.Join(dir, "css"))
	router.Static("/js", filepath.Join(dir, "js"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.StaticFile("/", filepath.Join(dir, "index.html"))
}

// staticPages serves top-level *.html pages from dir and answers every
// other unknown route with a not-found problem.
func staticPages(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if dir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) &&
			path.Dir(p) == "/" && strings.HasSuffix(p, ".html") {
			file := filepath.Join(dir, path.Base(p))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
		}
		respondProblem(c, apierrors.ErrNotFound.WithDetail("no route for "+c.Request.Method+" "+p))
	}
}
