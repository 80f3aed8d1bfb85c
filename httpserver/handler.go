package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/familybudget/teller-gateway/common"
	"github.com/familybudget/teller-gateway/interfaces"
	"github.com/familybudget/teller-gateway/metrics"
	"github.com/go-chi/chi/v5"
)

const (
	// APIKeyHeader carries the shared secret on mutating/reading endpoints.
	APIKeyHeader = "X-Api-Key"

	// maxBodySize is the maximum allowed request body size (1MB).
	maxBodySize = 1024 * 1024
)

// TransactionLister is the aggregation pipeline as seen by the HTTP layer.
type TransactionLister interface {
	ListTransactions(ctx context.Context, userID interfaces.UserID, startDate string) ([]interfaces.NormalizedTransaction, error)
}

// Handler translates HTTP requests into pipeline and credential store calls
// and maps business errors onto HTTP statuses. No business error crashes
// the process or leaks a stack trace; everything surfaces as a JSON
// {"error": message} body.
type Handler struct {
	pipeline     TransactionLister
	credentials  interfaces.CredentialStore
	apiKey       string
	configErrors []string
	log          *slog.Logger
}

// NewHandler creates the endpoint handler.
//
// Parameters:
//   - pipeline: aggregation pipeline serving /teller/transactions
//   - credentials: credential store serving /teller/enroll
//   - apiKey: shared secret required on the /teller endpoints; an empty
//     value is reported as a server misconfiguration, not an open door
//   - configErrors: runtime-config validation messages collected at startup
//   - log: structured logger
func NewHandler(pipeline TransactionLister, credentials interfaces.CredentialStore, apiKey string, configErrors []string, log *slog.Logger) *Handler {
	if configErrors == nil {
		configErrors = []string{}
	}
	return &Handler{
		pipeline:     pipeline,
		credentials:  credentials,
		apiKey:       apiKey,
		configErrors: configErrors,
		log:          log,
	}
}

// RegisterRoutes mounts the gateway endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleRoot)
	r.Get("/healthz", h.HandleHealthz)

	r.Route("/teller", func(r chi.Router) {
		r.Use(h.requireAPIKey)
		r.Use(h.requireRuntimeConfig)
		r.Post("/enroll", h.HandleEnroll)
		r.Get("/transactions", h.HandleTransactions)
	})
}

// requireAPIKey gates a route group behind the shared API key. A missing
// server-side key is a 500 (misconfiguration); a mismatch is a 401.
func (h *Handler) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiKey == "" {
			h.writeError(w, r, http.StatusInternalServerError, "Server misconfigured: missing API key")
			return
		}
		given := r.Header.Get(APIKeyHeader)
		if given == "" || given != h.apiKey {
			h.writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRuntimeConfig rejects requests while required configuration is
// missing. Configuration problems never crash the process; they surface
// here and on /healthz.
func (h *Handler) requireRuntimeConfig(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(h.configErrors) > 0 {
			h.writeError(w, r, http.StatusInternalServerError, strings.Join(h.configErrors, "; "))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleRoot is the liveness endpoint.
//
// URL format: GET /
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"ok":      true,
		"service": common.ServiceName,
	})
}

// HandleHealthz reports whether required runtime configuration is present.
// It never checks secret validity, only that the settings exist.
//
// URL format: GET /healthz
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"ok":            true,
		"config_ok":     len(h.configErrors) == 0,
		"config_errors": h.configErrors,
	})
}

// enrollRequest is the POST /teller/enroll body.
type enrollRequest struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// HandleEnroll stores a user's Teller access token.
//
// URL format: POST /teller/enroll
//
// Request body: {"userId": "...", "accessToken": "..."}; userId defaults to
// "default" when omitted. A missing or blank accessToken is a 400 and
// writes nothing.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	userID := interfaces.NewUserID(req.UserID)
	accessToken := strings.TrimSpace(req.AccessToken)
	if accessToken == "" {
		h.writeError(w, r, http.StatusBadRequest, "Missing accessToken")
		return
	}

	if err := h.credentials.UpsertCredential(r.Context(), userID, accessToken, time.Now().UTC()); err != nil {
		h.log.Error("Failed to store credential", "err", err, slog.String("userId", userID.String()))
		h.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

// HandleTransactions returns the user's normalized transactions across all
// accounts.
//
// URL format: GET /teller/transactions?userId=...&start_date=YYYY-MM-DD
//
// userId defaults to "default". A non-blank start_date is forwarded
// upstream as a filter. No enrollment is a 404, a blank stored token a 400,
// and any upstream failure a 500 with the upstream status and body folded
// into the message.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID := interfaces.NewUserID(r.URL.Query().Get("userId"))
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))

	txns, err := h.pipeline.ListTransactions(r.Context(), userID, startDate)
	if err != nil {
		h.log.Error("Aggregation failed", "err", err, slog.String("userId", userID.String()))

		switch {
		case errors.Is(err, interfaces.ErrCredentialNotFound):
			h.writeError(w, r, http.StatusNotFound, "No enrolled Teller token for user")
		case errors.Is(err, interfaces.ErrEmptyAccessToken):
			h.writeError(w, r, http.StatusBadRequest, "Stored access token is empty")
		default:
			h.writeError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if txns == nil {
		txns = []interfaces.NormalizedTransaction{}
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"transactions": txns})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	metrics.ObserveRequest(r.URL.Path, status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]any{"error": msg})
}
