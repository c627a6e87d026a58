package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taxportal/internal/form"
	"taxportal/internal/importer"
	"taxportal/internal/session"
	"taxportal/internal/submission"
	id "taxportal/pkg/domain"
	"taxportal/pkg/platform/audit"
	"taxportal/pkg/platform/httputil"
	"taxportal/pkg/requestcontext"
)

// Sessions defines the session operations the HTTP adapter needs.
type Sessions interface {
	Open(ctx context.Context) (session.Snapshot, error)
	Snapshot(ctx context.Context, sessionID id.SessionID) (session.Snapshot, error)
	SetField(ctx context.Context, sessionID id.SessionID, field form.FieldID, value string) (session.Snapshot, error)
	SelectDocument(ctx context.Context, sessionID id.SessionID, name string) (session.Snapshot, error)
	StartImport(ctx context.Context, sessionID id.SessionID) (importer.Job, error)
	CancelImport(ctx context.Context, sessionID id.SessionID) (bool, error)
	Submit(ctx context.Context, sessionID id.SessionID) (submission.Decision, error)
	Audit(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error)
	Close(ctx context.Context, sessionID id.SessionID) error
}

// Handler is the thin HTTP layer over filing sessions. It renders assistant
// state for the page and holds no form logic of its own.
type Handler struct {
	sessions Sessions
	logger   *slog.Logger
}

func New(sessions Sessions, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Register mounts the session endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.HandleOpen)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Delete("/", h.HandleClose)
			r.Put("/fields/{field}", h.HandleSetField)
			r.Put("/document", h.HandleSelectDocument)
			r.Post("/import", h.HandleStartImport)
			r.Delete("/import", h.HandleCancelImport)
			r.Post("/submit", h.HandleSubmit)
			r.Get("/audit", h.HandleAudit)
		})
	})
}

// HandleOpen handles POST /sessions.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	snap, err := h.sessions.Open(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open session",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "session opened",
		"request_id", requestID,
		"session_id", snap.SessionID.String(),
		"client_ip", requestcontext.ClientIP(ctx),
		"device", ParseUserAgent(requestcontext.UserAgent(ctx)),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromSnapshot(snap))
}

// HandleGet handles GET /sessions/{sessionID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		h.fail(ctx, w, "failed to read session", sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(snap))
}

// HandleSetField handles PUT /sessions/{sessionID}/fields/{field}.
func (h *Handler) HandleSetField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetFieldRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	field := form.FieldID(chi.URLParam(r, "field"))
	snap, err := h.sessions.SetField(ctx, sessionID, field, req.Value)
	if err != nil {
		h.fail(ctx, w, "failed to set field", sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(snap))
}

// HandleSelectDocument handles PUT /sessions/{sessionID}/document.
func (h *Handler) HandleSelectDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SelectDocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	snap, err := h.sessions.SelectDocument(ctx, sessionID, req.Name)
	if err != nil {
		h.fail(ctx, w, "failed to select document", sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(snap))
}

// HandleStartImport handles POST /sessions/{sessionID}/import.
func (h *Handler) HandleStartImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	job, err := h.sessions.StartImport(ctx, sessionID)
	if err != nil {
		h.fail(ctx, w, "failed to start import", sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, FromJob(job))
}

// HandleCancelImport handles DELETE /sessions/{sessionID}/import.
func (h *Handler) HandleCancelImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	cancelled, err := h.sessions.CancelImport(ctx, sessionID)
	if err != nil {
		h.fail(ctx, w, "failed to cancel import", sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CancelImportResponse{Cancelled: cancelled})
}

// HandleSubmit handles POST /sessions/{sessionID}/submit. Rejections are
// advisory results and still answer 200.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	decision, err := h.sessions.Submit(ctx, sessionID)
	if err != nil {
		h.fail(ctx, w, "failed to submit", sessionID, err)
		return
	}

	h.logger.InfoContext(ctx, "submission handled",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sessionID.String(),
		"outcome", string(decision.Outcome),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleAudit handles GET /sessions/{sessionID}/audit.
func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	events, err := h.sessions.Audit(ctx, sessionID)
	if err != nil {
		h.fail(ctx, w, "failed to list audit events", sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAuditEvents(events))
}

// HandleClose handles DELETE /sessions/{sessionID}.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Close(ctx, sessionID); err != nil {
		h.fail(ctx, w, "failed to close session", sessionID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (id.SessionID, bool) {
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid session id",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return id.SessionID{}, false
	}
	return sessionID, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, sessionID id.SessionID, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sessionID.String(),
		"error", err,
	)
	httputil.WriteError(w, err)
}
