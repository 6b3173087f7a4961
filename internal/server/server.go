package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"StockPulse/internal/cache"
	"StockPulse/internal/model"
)

// Server is a read-only HTTP projection over the price cache. Handlers
// never trigger an upstream fetch; every response is served from whatever
// the fetch cycle last wrote.
type Server struct {
	symbols []string
	cache   *cache.PriceCache
	stats   *Stats
	logger  *zap.Logger
}

// New creates a Server for the configured symbol list.
func New(symbols []string, pc *cache.PriceCache, logger *zap.Logger) *Server {
	return &Server{
		symbols: symbols,
		cache:   pc,
		stats:   &Stats{},
		logger:  logger,
	}
}

// Handler returns the full route table wrapped in panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /check", s.handlePrices)
	mux.HandleFunc("GET /prices", s.handlePrices)
	mux.HandleFunc("GET /price/{symbol}", s.handlePrice)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("/", s.handleNotFound)
	return s.recoverPanic(mux)
}

// symbolResponse is one entry of the /check and /prices payload. Pointer
// fields render as JSON null for symbols that were never fetched.
type symbolResponse struct {
	Price     *float64 `json:"price"`
	Timestamp *float64 `json:"timestamp"`
	Error     string   `json:"error,omitempty"`
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	total := s.stats.Record(remoteIP(r))
	s.logger.Info("prices requested",
		zap.String("path", r.URL.Path),
		zap.Int64("call_number", total),
		zap.String("remote_ip", remoteIP(r)))

	response := make(map[string]symbolResponse, len(s.symbols))
	for _, symbol := range s.symbols {
		if rec, ok := s.cache.Get(symbol); ok {
			price, ts := rec.Price, rec.Timestamp
			response[symbol] = symbolResponse{Price: &price, Timestamp: &ts}
		} else {
			response[symbol] = symbolResponse{Error: "No data available"}
		}
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))
	rec, ok := s.cache.Get(symbol)
	if !ok {
		// Informational, not an error condition.
		s.logger.Debug("unknown symbol requested", zap.String("symbol", symbol))
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Symbol %s not found", symbol))
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("health check requested")
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": model.EpochSeconds(time.Now()),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("unknown endpoint requested", zap.String("path", r.URL.Path))
	s.writeError(w, http.StatusNotFound, "Endpoint not found")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// recoverPanic keeps a handler fault terminal at the request level: the
// panic is logged with its stack and surfaced as a generic JSON 500.
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"))
				s.writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
