package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/usecase"
	"flight-quality-analyzer/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// AnalysisRunner is the use case surface the handlers depend on
type AnalysisRunner interface {
	Analyze(ctx context.Context, req usecase.AnalysisRequest) (*usecase.AnalysisReport, error)
	Flights(ctx context.Context) (*usecase.Batch, error)
	InconsistentChains(ctx context.Context) ([]entity.FlightRecord, error)
}

// Handlers serves the flight and analysis endpoints
type Handlers struct {
	service AnalysisRunner
	logger  logger.Logger
}

// NewHandlers creates the API handlers
func NewHandlers(service AnalysisRunner, logger logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

// ListFlights handles GET /api/flights
func (h *Handlers) ListFlights() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch, err := h.service.Flights(r.Context())
		if err != nil {
			h.logger.Error("Failed to load flights", "error", err)
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithSuccess(w, http.StatusOK, batch)
	}
}

// InconsistentChains handles GET /api/flights/inconsistent-chains
func (h *Handlers) InconsistentChains() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.service.InconsistentChains(r.Context())
		if err != nil {
			h.logger.Error("Failed to evaluate flight chains", "error", err)
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if records == nil {
			records = []entity.FlightRecord{}
		}
		respondWithSuccess(w, http.StatusOK, &records)
	}
}

// Analysis handles GET /api/analysis.
//
// Query parameters:
//   - checks: comma separated check ids, all checks when absent
//   - detailed: return the full report instead of the message list
//   - all_breaks: report every broken pair in overlap and sequence checks
func (h *Handlers) Analysis() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := analysisRequestFromQuery(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if raw := r.URL.Query().Get("checks"); raw != "" {
			for _, name := range strings.Split(raw, ",") {
				if strings.TrimSpace(name) == "" {
					continue
				}
				kind, err := usecase.ParseCheckKind(name)
				if err != nil {
					respondWithError(w, http.StatusBadRequest, err.Error())
					return
				}
				req.Checks = append(req.Checks, kind)
			}
		}

		h.analyze(w, r, req)
	}
}

// AnalysisByCheck handles GET /api/analysis/{check}
func (h *Handlers) AnalysisByCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := usecase.ParseCheckKind(chi.URLParam(r, "check"))
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		req, err := analysisRequestFromQuery(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Checks = []entity.CheckKind{kind}

		h.analyze(w, r, req)
	}
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request, req usecase.AnalysisRequest) {
	report, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrUnknownCheck) {
			status = http.StatusBadRequest
		}
		h.logger.Error("Analysis failed", "error", err)
		respondWithError(w, status, err.Error())
		return
	}

	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))
	if detailed {
		respondWithSuccess(w, http.StatusOK, report)
		return
	}

	messages := entity.Messages(report.Findings)
	respondWithSuccess(w, http.StatusOK, &messages)
}

func analysisRequestFromQuery(r *http.Request) (usecase.AnalysisRequest, error) {
	var req usecase.AnalysisRequest

	if raw := r.URL.Query().Get("all_breaks"); raw != "" {
		allBreaks, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errors.New("invalid all_breaks parameter")
		}
		req.ReportAllBreaks = &allBreaks
	}
	if raw := r.URL.Query().Get("detailed"); raw != "" {
		if _, err := strconv.ParseBool(raw); err != nil {
			return req, errors.New("invalid detailed parameter")
		}
	}
	return req, nil
}
