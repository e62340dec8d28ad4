package analysis

import (
	"encoding/json"
	"net/http"
	"strconv"

	"financial_health/pkg/models"

	"github.com/google/uuid"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind string) int {
	switch kind {
	case models.KindMissingField, models.KindDivisionByZero:
		return http.StatusUnprocessableEntity
	case models.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	kind := models.ErrorKind(err)
	msg := err.Error()
	if kind == models.KindInternal {
		msg = "internal error"
	}
	writeJSON(w, StatusFor(kind), ErrorResponse{Error: msg, Kind: kind})
}

func writeDownload(w http.ResponseWriter, id uuid.UUID, contentType, filename string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.Header().Set(ReportIDHeader, id.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
