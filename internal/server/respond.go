package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}

// respondJSON sends a 200 JSON response.
func respondJSON(w http.ResponseWriter, payload any) {
	setHeaders(w)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorResponse is the body of every non-200 response.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
}

// respondError maps err onto a status code and writes a JSON error body.
func respondError(w http.ResponseWriter, err error) {
	status := bridgeerrors.HTTPStatus(err)
	setHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     err.Error(),
		Code:      string(bridgeerrors.CodeOf(err)),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeJSONBody decodes r's body into dst, limited to maxBytes. An empty
// body is accepted when allowEmpty is set. Failures are validation errors.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64, allowEmpty bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if allowEmpty {
			return nil
		}
		return bridgeerrors.New(bridgeerrors.ErrCodeValidation, "request body required")
	}
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return bridgeerrors.Newf(bridgeerrors.ErrCodeValidation, "request body too large (max %d bytes)", maxBytes)
		}
		return bridgeerrors.Wrap(err, bridgeerrors.ErrCodeValidation, "malformed request body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return bridgeerrors.New(bridgeerrors.ErrCodeValidation, "malformed request body: unexpected data after JSON value")
	}
	return nil
}
