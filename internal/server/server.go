// Package server exposes the evaluator over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/codefionn/calcschnell/internal/calculator"
	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/expr"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/julienschmidt/httprouter"
)

// HistoryStore is the part of history.Store the server needs
type HistoryStore interface {
	Record(ctx context.Context, entry history.Entry) error
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
	Clear(ctx context.Context) error
}

// Options configures a Server
type Options struct {
	Addr      string
	Precision int
	History   HistoryStore // nil disables the history endpoints
	Logger    *slog.Logger
}

// Server provides the HTTP interface of the calculator
type Server struct {
	opts   Options
	log    *slog.Logger
	router *httprouter.Router
	server *http.Server
}

// EvaluateRequest is the body of POST /v1/evaluate
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse is returned by POST /v1/evaluate
type EvaluateResponse struct {
	Expression string         `json:"expression"`
	Result     *float64       `json:"result,omitempty"`
	Display    string         `json:"display"`
	Error      *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse describes a failed evaluation or request
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// New creates a server; call Start to listen
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = consts.DefaultServeAddr
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		opts:   opts,
		log:    log,
		router: httprouter.New(),
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  consts.ServerReadTimeout,
		WriteTimeout: consts.ServerWriteTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
	return s
}

// Handler returns the routed handler, wrapped with request logging
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.router)
}

// Start listens on the configured address and blocks until the server stops.
// After Stop it returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.opts.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, consts.ServerShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/v1/evaluate", s.handleEvaluate)
	s.router.GET("/v1/history", s.handleHistory)
	s.router.DELETE("/v1/history", s.handleHistoryClear)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req EvaluateRequest
	body := http.MaxBytesReader(w, r.Body, consts.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if utf8.RuneCountInString(req.Expression) > consts.MaxInputLength {
		s.writeError(w, http.StatusRequestEntityTooLarge, "expression_too_long",
			"expression exceeds "+strconv.Itoa(consts.MaxInputLength)+" characters")
		return
	}

	resp := EvaluateResponse{Expression: req.Expression}
	status := http.StatusOK

	value, err := expr.Evaluate(req.Expression)
	if err != nil {
		kind, _ := expr.KindOf(err)
		resp.Display = consts.ErrorDisplay
		resp.Error = &ErrorResponse{Kind: kind.String(), Message: err.Error()}
		status = http.StatusUnprocessableEntity
	} else {
		resp.Display = calculator.Format(value, s.opts.Precision)
		if !math.IsNaN(value) && !math.IsInf(value, 0) {
			resp.Result = &value
		}
	}

	if s.opts.History != nil {
		entry := history.NewEntry(req.Expression, value, resp.Display, err)
		if recErr := s.opts.History.Record(r.Context(), entry); recErr != nil {
			s.log.Warn("failed to record history", "error", recErr)
		}
	}

	s.writeJSON(w, status, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.opts.History == nil {
		s.writeError(w, http.StatusNotFound, "history_disabled", "history is disabled")
		return
	}

	limit := consts.DefaultHistoryListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.opts.History.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error("history query failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal", "failed to read history")
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.opts.History == nil {
		s.writeError(w, http.StatusNotFound, "history_disabled", "history is disabled")
		return
	}
	if err := s.opts.History.Clear(r.Context()); err != nil {
		s.log.Error("history clear failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal", "failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, kind, message string) {
	s.writeJSON(w, status, struct {
		Error ErrorResponse `json:"error"`
	}{ErrorResponse{Kind: kind, Message: message}})
}
