package emulator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/raywall/yelp-fusion-toolkit/models"
)

// Rotas servidas pelo emulator.
const (
	TokenPath = "/oauth2/token"
	APIPrefix = "/v3"
)

// Emulator simula a API Fusion: endpoint de token e as rotas de negócios.
type Emulator struct {
	fixtures Fixtures
	logger   zerolog.Logger
	router   *mux.Router

	tokenRequests atomic.Int64
	apiRequests   atomic.Int64
}

type Option func(*Emulator)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Emulator) { e.logger = l }
}

// New monta o roteador com as fixtures informadas.
func New(fx Fixtures, opts ...Option) *Emulator {
	e := &Emulator{fixtures: fx, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	router := mux.NewRouter()
	router.Use(e.logRequests)
	router.HandleFunc(TokenPath, e.handleToken).Methods(http.MethodPost)

	v3 := router.PathPrefix(APIPrefix).Subrouter()
	v3.Use(e.requireBearer)
	v3.HandleFunc("/businesses/search", e.handleSearch).Methods(http.MethodGet)
	v3.HandleFunc("/businesses/{id}/reviews", e.handleReviews).Methods(http.MethodGet)
	v3.HandleFunc("/businesses/{id}", e.handleDetails).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, http.StatusNotFound, "NOT_FOUND", "Resource could not be found.")
	})

	e.router = router
	return e
}

func (e *Emulator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.router.ServeHTTP(w, r)
}

// TokenRequests conta os POSTs recebidos no endpoint de token.
func (e *Emulator) TokenRequests() int64 { return e.tokenRequests.Load() }

// APIRequests conta as chamadas autenticadas às rotas /v3.
func (e *Emulator) APIRequests() int64 { return e.apiRequests.Load() }

// ListenAndServe atende em addr até o contexto ser cancelado.
func (e *Emulator) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info().Str("addr", addr).Msg("emulator listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// --- Middlewares ---

func (e *Emulator) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		e.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Dur("elapsed", time.Since(start)).
			Msg("emulator request")
	})
}

func (e *Emulator) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			sendError(w, http.StatusUnauthorized, "TOKEN_MISSING", "You didn't provide an API key.")
			return
		}
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token != e.fixtures.Token {
			sendError(w, http.StatusUnauthorized, "TOKEN_INVALID", "Invalid API key.")
			return
		}
		e.apiRequests.Add(1)
		next.ServeHTTP(w, r)
	})
}

// --- Handlers ---

func (e *Emulator) handleToken(w http.ResponseWriter, r *http.Request) {
	e.tokenRequests.Add(1)

	if err := r.ParseForm(); err != nil {
		sendResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}
	if r.PostForm.Get("grant_type") != "client_credentials" {
		sendResponse(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}
	if !e.fixtures.accepts(r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")) {
		sendResponse(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_client",
			"error_description": "client_id or client_secret are incorrect",
		})
		return
	}

	sendResponse(w, http.StatusOK, map[string]interface{}{
		"access_token": e.fixtures.Token,
		"expires_in":   e.fixtures.ExpiresIn,
		"token_type":   "Bearer",
	})
}

func (e *Emulator) handleDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if e.fault(w, id) {
		return
	}
	business, ok := e.fixtures.find(id)
	if !ok {
		sendError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND", "The requested business could not be found.")
		return
	}
	sendResponse(w, http.StatusOK, business)
}

func (e *Emulator) handleReviews(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if e.fault(w, id) {
		return
	}
	business, ok := e.fixtures.find(id)
	if !ok {
		sendError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND", "The requested business could not be found.")
		return
	}

	reviews := e.fixtures.Reviews[business.ID]
	if reviews == nil {
		reviews = []models.Review{}
	}
	sendResponse(w, http.StatusOK, models.ReviewsEnvelope{
		Total:             len(reviews),
		Reviews:           reviews,
		PossibleLanguages: []string{"en"},
	})
}

func (e *Emulator) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, apiErr := parseQuery(r)
	if apiErr != nil {
		sendError(w, http.StatusBadRequest, apiErr.code, apiErr.description)
		return
	}
	sendResponse(w, http.StatusOK, e.search(q))
}

// fault aplica o status configurado em Faults para o id, se houver.
func (e *Emulator) fault(w http.ResponseWriter, id string) bool {
	status, ok := e.fixtures.Faults[id]
	if !ok {
		return false
	}
	sendError(w, status, "INTERNAL_ERROR", "Simulated failure.")
	return true
}

func sendError(w http.ResponseWriter, status int, code, description string) {
	sendResponse(w, status, map[string]interface{}{
		"error": map[string]string{"code": code, "description": description},
	})
}

func sendResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
