package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"inkwell/controllers"
	"inkwell/middlewares"
)

// SetupRoutes builds the application router with its middleware chain. The
// returned handler is wrapped with method override so HTML forms can express
// PUT and DELETE.
func SetupRoutes(posts *controllers.PostHandler, pages *controllers.PageHandler) http.Handler {
	router := mux.NewRouter()

	router.Use(middlewares.SecurityHeaders)
	router.Use(middlewares.LoggingMiddleware)

	rateLimiter := middlewares.NewRateLimiter(120, time.Minute, 2*time.Minute)
	router.Use(rateLimiter.Limit)

	posts.SetupPostRoutes(router)
	pages.SetupPageRoutes(router)

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(posts.Uploads.Dir))))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Views.RenderError(w, http.StatusNotFound, "Page not found")
	})

	return middlewares.MethodOverride(router)
}
