package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/stonebridge-bank/ledger/internal/commons"
	"github.com/stonebridge-bank/ledger/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the engine's typed failures onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSenderNotFound),
		errors.Is(err, domain.ErrReceiverNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	}

	var fundsErr *domain.InsufficientFundsError
	if errors.As(err, &fundsErr) {
		return http.StatusUnprocessableEntity
	}
	var invariantErr *domain.InvariantViolationError
	if errors.As(err, &invariantErr) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func queryInt64(r *http.Request, name string) (int64, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func queryPage(r *http.Request) (limit, offset int) {
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}
	return limit, offset
}
