package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"mercator-hq/slotgen/pkg/generator"
	grammarerrors "mercator-hq/slotgen/pkg/grammar/errors"
	"mercator-hq/slotgen/pkg/reload"
	"mercator-hq/slotgen/pkg/server/middleware"
	"mercator-hq/slotgen/pkg/telemetry/logging"
)

// TemplatesResponse is the body of GET /v1/templates.
type TemplatesResponse struct {
	Templates []string `json:"templates"`
	BuildID   string   `json:"build_id"`
}

// GenerateResponse is the body of GET /v1/generate/{name}.
type GenerateResponse struct {
	Template  string     `json:"template"`
	Outputs   []string   `json:"outputs"`
	Lines     [][]string `json:"lines,omitempty"`
	RequestID string     `json:"request_id"`
	BuildID   string     `json:"build_id"`
}

// ReloadResponse is the body of POST /v1/reload.
type ReloadResponse struct {
	BuildID   string `json:"build_id"`
	Templates int    `json:"templates"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	names := generator.MatchNames(r.URL.Query().Get("q"), s.holder.TemplateNames())
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, TemplatesResponse{
		Templates: names,
		BuildID:   s.holder.Info().ID,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ctx := logging.WithTemplate(r.Context(), name)
	query := r.URL.Query()

	count := 1
	if raw := query.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > s.config.MaxCount {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrorDetail{
				Message: fmt.Sprintf("count must be an integer between 1 and %d", s.config.MaxCount),
				Type:    middleware.ErrorTypeInvalidRequest,
				Param:   "count",
			})
			return
		}
		count = n
	}

	split := false
	if raw := query.Get("split"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrorDetail{
				Message: "split must be a boolean",
				Type:    middleware.ErrorTypeInvalidRequest,
				Param:   "split",
			})
			return
		}
		split = b
	}

	outputs, err := s.holder.Generate(name, count)
	if err != nil {
		if e, ok := grammarerrors.As(err); ok && e.Type == grammarerrors.ErrorTypeUndefinedTemplate {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrorDetail{
				Message:    e.Message,
				Type:       middleware.ErrorTypeNotFound,
				Suggestion: e.Suggestion,
			})
			return
		}
		logging.FromContext(ctx, s.logger).Error("generation failed", "error", err)
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrorDetail{
			Message: err.Error(),
			Type:    middleware.ErrorTypeServerError,
		})
		return
	}

	resp := GenerateResponse{
		Template:  name,
		Outputs:   outputs,
		RequestID: logging.GetRequestID(ctx),
		BuildID:   s.holder.Info().ID,
	}
	if split {
		resp.Lines = make([][]string, len(outputs))
		for i, out := range outputs {
			resp.Lines[i] = generator.SplitOutput(out, s.options.newlineMarker)
		}
	}

	logging.FromContext(ctx, s.logger).Debug("generated", "count", count)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.holder.Reload(reload.TriggerManual); err != nil {
		middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrorDetail{
			Message: err.Error(),
			Type:    middleware.ErrorTypeInvalidRequest,
		})
		return
	}

	info := s.holder.Info()
	writeJSON(w, http.StatusOK, ReloadResponse{
		BuildID:   info.ID,
		Templates: info.Templates,
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
