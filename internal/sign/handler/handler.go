package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"underwriter/internal/platform/metrics"
	"underwriter/internal/platform/middleware"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/service"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/httputil"
	"underwriter/pkg/requestcontext"
)

// Service is the sign flow as the HTTP layer sees it.
type Service interface {
	StartSign(ctx context.Context, req service.StartSignRequest) (models.StartSignResponse, error)
	SignMethodFor(ctx context.Context, quoteIDs []uuid.UUID) (models.SignMethod, error)
	CompletedSignSession(ctx context.Context, sessionID uuid.UUID, data models.CompletionData) error
	FailedSignSession(ctx context.Context, sessionID uuid.UUID, reason string) error
}

// Handler serves member sign requests and provider callbacks.
type Handler struct {
	sign          Service
	logger        *slog.Logger
	metrics       *metrics.Metrics
	timeout       time.Duration
	callbackToken string
}

// New creates a sign handler. Provider round trips are slow, zero timeout
// means 30s. An empty callbackToken rejects every provider callback.
func New(sign Service, logger *slog.Logger, m *metrics.Metrics, timeout time.Duration, callbackToken string) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		sign:          sign,
		logger:        logger,
		metrics:       m,
		timeout:       timeout,
		callbackToken: callbackToken,
	}
}

// Register adds the sign routes to r under their own middleware stack.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(signRouter chi.Router) {
		signRouter.Use(middleware.Recovery(h.logger))
		signRouter.Use(middleware.RequestID)
		signRouter.Use(middleware.RequestTime)
		signRouter.Use(middleware.Logger(h.logger))
		signRouter.Use(middleware.Timeout(h.timeout))
		signRouter.Use(middleware.LatencyMiddleware(h.metrics))

		signRouter.Group(func(member chi.Router) {
			member.Use(middleware.RequireMember(h.logger))
			member.Use(middleware.ClientMetadata)
			member.With(middleware.ContentTypeJSON).Post("/sign", h.handleStartSign)
		})
		signRouter.Get("/sign/method", h.handleSignMethod)

		signRouter.Group(func(callbacks chi.Router) {
			callbacks.Use(middleware.RequireProviderToken(h.callbackToken, h.logger))
			callbacks.Use(middleware.ContentTypeJSON)
			callbacks.Post("/sign-sessions/{id}/completed", h.handleCompleted)
			callbacks.Post("/sign-sessions/{id}/failed", h.handleFailed)
		})
	})
}

func (h *Handler) handleStartSign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[StartSignRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	resp, err := h.sign.StartSign(ctx, service.StartSignRequest{
		QuoteIDs: req.parsedIDs,
		Context: models.SignContext{
			MemberID:   requestcontext.MemberID(ctx),
			IPAddress:  requestcontext.ClientIP(ctx),
			SuccessURL: req.SuccessURL,
			FailURL:    req.FailURL,
		},
	})
	if err != nil {
		h.writeServiceError(ctx, w, "failed to start sign", err)
		return
	}
	status, body := toStartSignResponse(resp)
	httputil.WriteJSON(w, status, body)
}

// handleSignMethod answers GET /sign/method?quoteIds=a,b.
func (h *Handler) handleSignMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("quoteIds")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "quoteIds is required"))
		return
	}
	ids, err := parseIDs(strings.Split(raw, ","))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	method, err := h.sign.SignMethodFor(ctx, ids)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to resolve sign method", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SignMethodResponse{Method: method})
}

func (h *Handler) handleCompleted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CompletedSessionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.sign.CompletedSignSession(ctx, id, req.completionData()); err != nil {
		h.writeServiceError(ctx, w, "failed to complete sign session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFailed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FailedSessionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.sign.FailedSignSession(ctx, id, req.Reason); err != nil {
		h.writeServiceError(ctx, w, "failed to fail sign session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "session id must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}

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
