package v1

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError converts err to its HTTP status. Server-side failures are
// logged with full detail and reach the caller as a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	requestID := RequestIDFromContext(r.Context())

	detail := errorDetail{
		Code:      code.String(),
		Message:   errors.UserMessage(err),
		RequestID: requestID,
	}

	if code.Exposable() {
		detail.Details = exposedMeta(errors.GetMeta(err))
		slog.DebugContext(r.Context(), "request rejected",
			"request_id", requestID,
			"code", code,
			"error", err)
	} else {
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"code", code,
			"error", err)
	}

	writeJSON(w, status, errorBody{Error: detail})
}

// exposedMeta keeps the metadata keys that describe the caller's input.
func exposedMeta(meta map[string]any) map[string]any {
	out := map[string]any{}
	for _, key := range []string{"validation_errors", "unknown_spells", "ineligible_spells"} {
		if v, ok := meta[key]; ok {
			out[key] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// decodeJSON reads a single JSON object from the body.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.InvalidArgument("request body is required")
		}
		return errors.InvalidArgumentf("invalid request body: %v", err)
	}
	if dec.More() {
		return errors.InvalidArgument("request body must contain a single JSON object")
	}
	return nil
}
