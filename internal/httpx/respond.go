package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/twalumbu/martpos/internal/apperr"
)

// Every mutating endpoint answers with this envelope: {"success":true,
// "<entity>":...} or {"success":false,"error":"..."}. Business-rule failures
// carry their message; infrastructure failures are logged in full and
// surfaced as a generic message.

// OK writes a success envelope. key names the entity field; pass "" for a
// bare {"success":true}.
func OK(w http.ResponseWriter, status int, key string, entity interface{}) {
	body := map[string]interface{}{"success": true}
	if key != "" {
		body[key] = entity
	}
	write(w, status, body)
}

// Fail converts err into the failure envelope with a status derived from
// its classification.
func Fail(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInfrastructure {
		zap.S().Errorw("request failed", "err", err)
	}
	write(w, statusFor(kind), map[string]interface{}{
		"success": false,
		"error":   apperr.UserMessage(err),
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInsufficientStock, apperr.KindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
