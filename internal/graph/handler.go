package graph

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/merchkit/catalog/internal/observability"
)

// request is the JSON body of a GraphQL POST.
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves GraphQL operations over HTTP POST. The body carries the
// standard {query, variables, operationName} envelope; the result is
// serialized back as JSON.
type Handler struct {
	schema graphql.Schema
	logger *slog.Logger
}

// NewHandler creates a handler for the given schema. A nil logger falls back
// to slog.Default().
func NewHandler(schema graphql.Schema, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{schema: schema, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []map[string]any{{"message": "invalid request body: " + err.Error()}},
		})
		return
	}
	if req.Query == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []map[string]any{{"message": "no query provided"}},
		})
		return
	}

	timing := observability.StartServerTiming(r.Context(), "graphql")
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	timing.Stop()

	if len(result.Errors) > 0 {
		h.logger.Debug("graphql operation returned errors",
			"operation", req.OperationName,
			"errors", len(result.Errors))
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
