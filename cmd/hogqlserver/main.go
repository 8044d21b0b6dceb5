// Command hogqlserver exposes the five HogQL parse entry points over HTTP.
// Adapted from the teacher's cmd/server/main.go: same JSON-helper and CORS
// middleware shape, a single POST endpoint instead of the teacher's
// /query, a request-correlation ID per spec.md §9's "request correlation"
// ambient concern instead of the teacher's graph-mutation response branch.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hogql-lang/hogql/internal/config"
	"github.com/hogql-lang/hogql/internal/driver"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware stamps every request with a correlation ID and logs
// its method, path and duration — the server binding's only logging; the
// front-end packages behind it never log (spec.md §9).
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		start := time.Now()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
		log.Info("request", "id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

var rules = map[string]func(string, bool) string{
	"expr":               driver.ParseExpr,
	"order_expr":         driver.ParseOrderExpr,
	"select":             driver.ParseSelect,
	"full_template_string": driver.ParseFullTemplateString,
	"program":            driver.ParseProgram,
}

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	port := flag.Int("port", 0, "port to listen on (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}
	config.SetupLogger(cfg.LogLevel)
	if *port != 0 {
		cfg.ListenAddr = fmt.Sprintf(":%d", *port)
	}
	driver.MaxInputBytes = cfg.MaxInputBytes

	mux := http.NewServeMux()
	mux.HandleFunc("/parse", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Rule     string `json:"rule"`
			Input    string `json:"input"`
			Internal bool   `json:"internal"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		fn, ok := rules[body.Rule]
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown rule: %q", body.Rule))
			return
		}

		result := fn(body.Input, body.Internal)
		status := http.StatusOK
		if isErrorResult(result) {
			status = http.StatusUnprocessableEntity
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(result))
	})

	log.Info("hogqlserver listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, corsMiddleware(requestIDMiddleware(mux))); err != nil {
		log.Fatal("server error", "error", err)
	}
}

// isErrorResult sniffs the leading {"error":true marker driver's JSON
// results carry rather than re-decoding the whole body into a struct.
func isErrorResult(s string) bool {
	const marker = `{"error":true`
	return len(s) >= len(marker) && s[:len(marker)] == marker
}
