package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/javohir-a/kutubxona/internal/api"
	apiMiddleware "github.com/javohir-a/kutubxona/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. The route table keeps the original trailing-slash URL
// style, including the separate create/update/delete paths.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceID)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerify,
		app.tokenBlacklist,
		app.config.Auth,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	authorHandler := api.NewAuthorHandler(app.authorStore, app.logger)
	bookHandler := api.NewBookHandler(app.bookStore, app.logger)
	genreHandler := api.NewGenreHandler(app.genreStore, app.logger)
	publisherHandler := api.NewPublisherHandler(app.publisherStore, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewStore, app.logger)

	// Author and book reads are served through a short-lived response cache.
	readCache := apiMiddleware.NewResponseCache(apiMiddleware.DefaultCacheTTL)

	// Authentication endpoints (public)
	r.Post("/register/", authHandler.Register)
	r.Post("/login/", authHandler.Login)
	r.Post("/refresh/", authHandler.Refresh)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/authors/create/", authorHandler.Create)
		r.With(readCache.Middleware).Get("/authors/", authorHandler.List)
		r.With(readCache.Middleware).Get("/authors/{id}/", authorHandler.Detail)
		r.Put("/authors/{id}/update/", authorHandler.Update)
		r.Patch("/authors/{id}/update/", authorHandler.Update)
		r.Delete("/authors/{id}/delete/", authorHandler.Delete)

		r.Post("/books/create/", bookHandler.Create)
		r.With(readCache.Middleware).Get("/books/", bookHandler.List)
		r.With(readCache.Middleware).Get("/books/{id}/", bookHandler.Detail)
		r.Put("/books/{id}/update/", bookHandler.Update)
		r.Patch("/books/{id}/update/", bookHandler.Update)
		r.Delete("/books/{id}/delete/", bookHandler.Delete)

		r.Post("/genres/create/", genreHandler.Create)
		r.Get("/genres/", genreHandler.List)
		r.Get("/genres/{id}/", genreHandler.Detail)
		r.Put("/genres/{id}/update/", genreHandler.Update)
		r.Patch("/genres/{id}/update/", genreHandler.Update)
		r.Delete("/genres/{id}/delete/", genreHandler.Delete)

		r.Post("/publishers/create/", publisherHandler.Create)
		r.Get("/publishers/", publisherHandler.List)
		r.Get("/publishers/{id}/", publisherHandler.Detail)
		r.Put("/publishers/{id}/update/", publisherHandler.Update)
		r.Patch("/publishers/{id}/update/", publisherHandler.Update)
		r.Delete("/publishers/{id}/delete/", publisherHandler.Delete)

		r.Post("/reviews/create/", reviewHandler.Create)
		r.Get("/reviews/", reviewHandler.List)
		r.Get("/reviews/{id}/", reviewHandler.Detail)
		r.Put("/reviews/{id}/update/", reviewHandler.Update)
		r.Patch("/reviews/{id}/update/", reviewHandler.Update)
		r.Delete("/reviews/{id}/delete/", reviewHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
