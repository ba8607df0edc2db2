package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/judge"
	"github.com/robalobadob/mastermind/internal/store"
)

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorRes{Error: code, Detail: detail})
}

// fail maps domain errors onto HTTP statuses and stable error codes.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeError(w, status, code, "")
		return
	}
	writeError(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	var pe *game.ParseError
	switch {
	case errors.Is(err, judge.ErrLengthMismatch):
		return http.StatusBadRequest, "length_mismatch"
	case errors.Is(err, judge.ErrOutOfRange):
		return http.StatusBadRequest, "out_of_range"
	case errors.As(err, &pe):
		return http.StatusBadRequest, "parse_error"
	case errors.Is(err, game.ErrDuplicateGuess):
		return http.StatusConflict, "duplicate_guess"
	case errors.Is(err, game.ErrFinished):
		return http.StatusConflict, "game_finished"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}

// decode reads a JSON body into v, answering 400 bad_json on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}
