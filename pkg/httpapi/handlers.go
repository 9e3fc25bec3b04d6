package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/edgesentry/edgesentry/pkg/sandbox"
	"github.com/edgesentry/edgesentry/pkg/sysmem"
	"github.com/edgesentry/edgesentry/pkg/telemetry/metrics"
)

// healthHandler answers liveness probes. Per spec.md §6 the body is the
// literal text "OK", not JSON.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK")
}

// evaluateHandler runs the request body through the active policy and
// reports the verdict. A body that does not parse as JSON is rejected
// before the sandbox is ever touched.
func evaluateHandler(registry *sandbox.Registry, collector *metrics.Collector, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusOK, EvaluateResponse{
				Allowed: false,
				Error:   strPtr("Invalid JSON: " + err.Error()),
			})
			return
		}

		snapshot := registry.Read()

		if !json.Valid(body) {
			writeJSON(w, http.StatusOK, EvaluateResponse{
				Allowed:       false,
				PolicyVersion: snapshot.Version,
				Error:         strPtr("Invalid JSON: request body is not valid JSON"),
			})
			return
		}

		start := time.Now()
		verdict, err := sandbox.Evaluate(snapshot.Engine, snapshot.Module, body, logger)
		duration := time.Since(start)

		if err != nil {
			var fuelErr *sandbox.FuelExhaustedError
			fuelExhausted := errors.As(err, &fuelErr)
			if collector != nil {
				collector.RecordEvaluation("error", duration, fuelExhausted)
			}
			writeJSON(w, http.StatusOK, EvaluateResponse{
				Allowed:       false,
				PolicyVersion: snapshot.Version,
				Error:         strPtr(err.Error()),
			})
			return
		}

		result := "deny"
		if verdict.Allowed {
			result = "allow"
		}
		if collector != nil {
			collector.RecordEvaluation(result, duration, false)
		}

		writeJSON(w, http.StatusOK, EvaluateResponse{
			Allowed:       verdict.Allowed,
			PolicyVersion: snapshot.Version,
		})
	}
}

// reloadHandler triggers the manual reload path.
func reloadHandler(coordinator *sandbox.Coordinator, collector *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		result := coordinator.Reload()

		resultLabel := "success"
		if !result.Success {
			resultLabel = "failure"
		}
		if collector != nil {
			collector.RecordReload(resultLabel)
		}

		resp := ReloadResponse{Success: result.Success}
		if result.Message != "" {
			resp.Message = strPtr(result.Message)
		}
		if result.Success {
			resp.SizeBytes = intPtr(result.SizeBytes)
			resp.PolicyVersion = strPtr(result.PolicyVersion)
		}
		if result.Error != "" {
			resp.Error = strPtr(result.Error)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// metricsHandler reports process memory usage against the 10MB footprint
// target (spec.md §6), distinct from the Prometheus exposition endpoint.
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sample := sysmem.Read()
	writeJSON(w, http.StatusOK, MetricsResponse{
		MemoryKB:     sample.MemoryKB,
		MemoryMB:     sample.MemoryMB,
		TargetMB:     sample.TargetMB,
		WithinTarget: sample.WithinTarget,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
