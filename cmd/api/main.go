package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"ticket-classifier-go/internal/auditlog"
	"ticket-classifier-go/internal/config"
	"ticket-classifier-go/internal/dealers"
	"ticket-classifier-go/internal/inference"
	"ticket-classifier-go/internal/logger"
	"ticket-classifier-go/internal/pipeline"
)

type classifyRequest struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "ticket-classifier-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	// Reference table is required; without it identity resolution cannot run.
	log.WithField("mapping_path", cfg.MappingPath).Info("loading dealer mapping")
	table, err := dealers.Load(cfg.MappingPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load dealer mapping")
	}
	log.WithField("dealers", table.Len()).Info("dealer mapping loaded")

	audit, err := auditlog.Open(cfg.AuditLogPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open audit log")
	}
	defer audit.Close()

	p := pipeline.New(table, inference.NewClient(cfg), audit)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// classify endpoint
	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "classify")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		start := time.Now()
		res, err := p.Classify(r.Context(), req.Message)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("classification finished")

		if err != nil {
			switch {
			case errors.Is(err, pipeline.ErrEmptyInput):
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "please provide a ticket message"})
			default:
				var mErr *inference.MalformedResponseError
				if errors.As(err, &mErr) {
					reqLog.WithError(err).Warn("inference response malformed")
					writeJSON(w, http.StatusBadGateway, errorResponse{
						Error:  "classification failed: inference response malformed",
						Detail: mErr.Error(),
					})
					return
				}
				reqLog.WithError(err).Error("classification failed")
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "classification failed", Detail: err.Error()})
			}
			return
		}

		writeJSON(w, http.StatusOK, res)
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}
