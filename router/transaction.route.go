package router

import (
	"net/http"

	"github.com/UmangSachdeva/SalesX/handlers"
	"github.com/UmangSachdeva/SalesX/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

func Router(h *handlers.TransactionHandler, metrics *middleware.Metrics, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", handlers.Health).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/initialize", h.Initialize).Methods("GET")
	api.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	api.HandleFunc("/statistics/{month}", h.Statistics).Methods("GET")
	api.HandleFunc("/bar-chart/{month}", h.BarChart).Methods("GET")
	api.HandleFunc("/pie-chart/{month}", h.PieChart).Methods("GET")
	api.HandleFunc("/combined/{month}", h.Combined).Methods("GET")
	api.Use(metrics.Middleware)

	return middleware.RequestLogger(logger)(middleware.CORSMiddleware(r))
}
