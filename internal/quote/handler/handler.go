package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"underwriter/internal/platform/metrics"
	"underwriter/internal/platform/middleware"
	"underwriter/internal/quote/models"
	"underwriter/internal/quote/service"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/httputil"
)

// Service is the quote lifecycle as the HTTP layer sees it.
type Service interface {
	Create(ctx context.Context, req service.CreateRequest) (*models.Quote, error)
	Update(ctx context.Context, id uuid.UUID, patch models.Patch) (*models.Quote, error)
	Complete(ctx context.Context, id uuid.UUID) (*service.CompletionResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	Bypass(ctx context.Context, id uuid.UUID, bypassedBy string) (*models.Quote, error)
}

// Handler serves the quote endpoints.
type Handler struct {
	quotes     Service
	logger     *slog.Logger
	metrics    *metrics.Metrics
	timeout    time.Duration
	adminToken string
}

// New creates a quote handler. timeout bounds each request; zero means 10s.
// An empty adminToken closes the bypass route.
func New(quotes Service, logger *slog.Logger, m *metrics.Metrics, timeout time.Duration, adminToken string) *Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		quotes:     quotes,
		logger:     logger,
		metrics:    m,
		timeout:    timeout,
		adminToken: adminToken,
	}
}

// Register adds the quote routes to r under their own middleware stack.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(quoteRouter chi.Router) {
		quoteRouter.Use(middleware.Recovery(h.logger))
		quoteRouter.Use(middleware.RequestID)
		quoteRouter.Use(middleware.RequestTime)
		quoteRouter.Use(middleware.Logger(h.logger))
		quoteRouter.Use(middleware.Timeout(h.timeout))
		quoteRouter.Use(middleware.LatencyMiddleware(h.metrics))

		quoteRouter.Get("/quotes/{id}", h.handleGet)
		quoteRouter.Group(func(w chi.Router) {
			w.Use(middleware.ContentTypeJSON)
			w.Post("/quotes", h.handleCreate)
			w.Patch("/quotes/{id}", h.handleUpdate)
			w.With(middleware.RequireAdminToken(h.adminToken, h.logger)).
				Post("/quotes/{id}/bypass", h.handleBypass)
		})
		quoteRouter.Post("/quotes/{id}/complete", h.handleComplete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateQuoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	q, err := h.quotes.Create(ctx, req.toService())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create quote", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toQuoteResponse(q))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateQuoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	q, err := h.quotes.Update(ctx, id, req.Data)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update quote", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toQuoteResponse(q))
}

// handleComplete answers 200 for a priced or failed quote and 422 when
// guidelines were breached.
func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	res, err := h.quotes.Complete(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to complete quote", err)
		return
	}
	status := http.StatusOK
	if len(res.Breaches) > 0 {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, toCompletionResponse(res))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	q, err := h.quotes.Get(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get quote", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toQuoteResponse(q))
}

func (h *Handler) handleBypass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, ok := h.quoteID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[BypassRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	q, err := h.quotes.Bypass(ctx, id, req.BypassedBy)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to bypass guidelines", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toQuoteResponse(q))
}

func (h *Handler) quoteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "quote id must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError logs at warn for caller mistakes and at error for the rest.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := middleware.GetRequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
