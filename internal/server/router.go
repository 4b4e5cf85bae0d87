package server

import (
	"context"
	"net/http"

	"fridgechef/internal/handlers"
	applog "fridgechef/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/ingredients", handlers.IngredientCollection)
	mux.HandleFunc("/api/ingredients/", handlers.IngredientResource)
	applog.Debug(context.Background(), "route registered", "path", "/api/ingredients")
	mux.HandleFunc("/api/categories", handlers.Categories)
	applog.Debug(context.Background(), "route registered", "path", "/api/categories")
	mux.HandleFunc("/api/suggestions", handlers.Suggestions)
	applog.Debug(context.Background(), "route registered", "path", "/api/suggestions")
	mux.HandleFunc("/api/history", handlers.History)
	applog.Debug(context.Background(), "route registered", "path", "/api/history")
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
