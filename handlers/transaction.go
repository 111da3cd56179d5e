package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/UmangSachdeva/SalesX/helpers"
	"github.com/UmangSachdeva/SalesX/models"
	"github.com/UmangSachdeva/SalesX/services"
	"github.com/UmangSachdeva/SalesX/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

const (
	msgInitialized       = "Database initialized successfully"
	msgInitializeFailed  = "Error initializing database"
	msgTransactionsError = "Error fetching transactions"
	msgStatisticsError   = "Error fetching statistics"
	msgBarChartError     = "Error fetching bar chart data"
	msgPieChartError     = "Error fetching pie chart data"
	msgCombinedError     = "Error fetching combined data"
)

type Reporter interface {
	Listing(ctx context.Context, params services.ListingParams) (models.TransactionPage, error)
	Statistics(ctx context.Context, month string, year int) (models.Statistics, error)
	Histogram(ctx context.Context, month string, year int) ([]models.PriceBucketCount, error)
	CategoryBreakdown(ctx context.Context, month string, year int) ([]models.CategoryCount, error)
	Combined(ctx context.Context, month string, year int) (models.Combined, error)
}

type Initializer interface {
	Initialize(ctx context.Context) (int, error)
}

type TransactionHandler struct {
	reports Reporter
	seeder  Initializer
}

func NewTransactionHandler(reports Reporter, seeder Initializer) *TransactionHandler {
	return &TransactionHandler{reports: reports, seeder: seeder}
}

func (h *TransactionHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	if _, err := h.seeder.Initialize(r.Context()); err != nil {
		fail(w, r, msgInitializeFailed, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(msgInitialized)); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("write response")
	}
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := optionalInt(query.Get("page"))
	if err != nil {
		fail(w, r, msgTransactionsError, err)
		return
	}
	perPage, err := optionalInt(query.Get("perPage"))
	if err != nil {
		fail(w, r, msgTransactionsError, err)
		return
	}

	result, err := h.reports.Listing(r.Context(), services.ListingParams{
		Search:  query.Get("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		fail(w, r, msgTransactionsError, err)
		return
	}
	respond(w, r, result)
}

func (h *TransactionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthParams(r)
	if err != nil {
		fail(w, r, msgStatisticsError, err)
		return
	}
	stats, err := h.reports.Statistics(r.Context(), month, year)
	if err != nil {
		fail(w, r, msgStatisticsError, err)
		return
	}
	respond(w, r, stats)
}

func (h *TransactionHandler) BarChart(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthParams(r)
	if err != nil {
		fail(w, r, msgBarChartError, err)
		return
	}
	bars, err := h.reports.Histogram(r.Context(), month, year)
	if err != nil {
		fail(w, r, msgBarChartError, err)
		return
	}
	respond(w, r, bars)
}

func (h *TransactionHandler) PieChart(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthParams(r)
	if err != nil {
		fail(w, r, msgPieChartError, err)
		return
	}
	categories, err := h.reports.CategoryBreakdown(r.Context(), month, year)
	if err != nil {
		fail(w, r, msgPieChartError, err)
		return
	}
	respond(w, r, categories)
}

func (h *TransactionHandler) Combined(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthParams(r)
	if err != nil {
		fail(w, r, msgCombinedError, err)
		return
	}
	combined, err := h.reports.Combined(r.Context(), month, year)
	if err != nil {
		fail(w, r, msgCombinedError, err)
		return
	}
	respond(w, r, combined)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("write response")
	}
}

// monthParams reads the {month} path segment and the optional year query
// parameter. A zero year means the current year.
func monthParams(r *http.Request) (string, int, error) {
	year, err := helpers.ParseYear(r.URL.Query().Get("year"), 0)
	if err != nil {
		return "", 0, err
	}
	return mux.Vars(r)["month"], year, nil
}

func optionalInt(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func respond(w http.ResponseWriter, r *http.Request, payload interface{}) {
	if err := utils.WriteJSON(w, http.StatusOK, payload); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("write response")
	}
}

// fail logs the cause and answers with a fixed message for the endpoint family.
func fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg(message)
	http.Error(w, message, http.StatusInternalServerError)
}
