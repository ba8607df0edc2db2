// internal/httpserver/routes_game.go
//
// Free-play and stateless evaluation routes.
//   - POST /check      → score a guess against a caller-supplied hidden code
//   - POST /game/new   → start a session (random or fixed hidden code)
//   - POST /game/guess → submit a guess as a JSON array or as text "1,2,3,4"
//   - GET  /game/{id}  → turn history; the hidden code is revealed once finished
//   - DELETE /game/{id} → abandon a game and free it

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/judge"
	"github.com/robalobadob/mastermind/internal/store"
)

type checkReq struct {
	Colors int    `json:"colors"`
	Hidden []int  `json:"hidden"`
	Guess  []int  `json:"guess"`
	Rule   string `json:"rule"`
}

// handleCheck exposes the evaluator directly; nothing is stored.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if !decode(w, r, &req) {
		return
	}
	rule, err := judge.ParseRule(req.Rule)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_rule", err.Error())
		return
	}
	fb, err := judge.CheckWith(rule, req.Colors, req.Hidden, req.Guess)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

type newGameReq struct {
	Length int    `json:"length"`
	Colors int    `json:"colors"`
	Turns  int    `json:"turns"`
	Rule   string `json:"rule"`
	Hidden []int  `json:"hidden"` // optional fixed code (testing)
}

type newGameRes struct {
	GameID string `json:"gameId"`
	game.Config
	Player string `json:"player"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	cfg := s.cfg.Game
	if req.Length != 0 {
		cfg.Length = req.Length
	}
	if req.Colors != 0 {
		cfg.Colors = req.Colors
	}
	if req.Turns != 0 {
		cfg.MaxTurns = req.Turns
	}
	if req.Rule != "" {
		rule, err := judge.ParseRule(req.Rule)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_rule", err.Error())
			return
		}
		cfg.Rule = rule
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}

	g, err := game.New(cfg, req.Hidden)
	if err != nil {
		fail(w, r, err)
		return
	}
	me := playerFrom(r.Context())
	g.Owner = me.ID
	if err := s.store.Save(r.Context(), g); err != nil {
		fail(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", g.ID).Str("player", me.ID).
		Int("length", cfg.Length).Int("colors", cfg.Colors).Stringer("rule", cfg.Rule).Msg("game created")
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Config: cfg, Player: me.Name})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  []int  `json:"guess"`
	Text   string `json:"text"`
}

type guessRes struct {
	judge.Feedback
	State     game.State `json:"state"`
	Turn      int        `json:"turn"`
	Remaining int        `json:"remaining"`
	Hidden    []int      `json:"hidden,omitempty"`
}

// handleGuess applies a guess under the store's per-game lock.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	me := playerFrom(r.Context())

	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.Owner != me.ID {
			return store.ErrNotFound
		}
		guess, err := resolveGuess(req.Guess, req.Text, g.Config)
		if err != nil {
			return err
		}
		fb, state, err := g.ApplyGuess(guess)
		if err != nil {
			return err
		}
		res = guessRes{Feedback: fb, State: state, Turn: len(g.Turns), Remaining: g.Remaining()}
		if g.Finished {
			res.Hidden = g.Hidden()
		}
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	if res.State != game.StatePlaying {
		hlog.FromRequest(r).Info().Str("gameId", req.GameID).Str("state", string(res.State)).Int("turns", res.Turn).
			Str("hidden", game.FormatSequence(res.Hidden)).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

type turnView struct {
	Guess   []int `json:"guess"`
	Exact   int   `json:"exact"`
	Partial int   `json:"partial"`
}

type gameView struct {
	GameID string `json:"gameId"`
	game.Config
	State     game.State `json:"state"`
	Turns     []turnView `json:"history"`
	Remaining int        `json:"remaining"`
	Hidden    []int      `json:"hidden,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	me := playerFrom(r.Context())

	var view gameView
	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		if g.Owner != me.ID {
			return store.ErrNotFound
		}
		view = gameView{GameID: g.ID, Config: g.Config, State: g.State(), Remaining: g.Remaining(), Turns: make([]turnView, 0, len(g.Turns))}
		for _, t := range g.Turns {
			view.Turns = append(view.Turns, turnView{Guess: t.Guess, Exact: t.Feedback.Exact, Partial: t.Feedback.Partial})
		}
		if g.Finished {
			view.Hidden = g.Hidden()
		}
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleDeleteGame removes a game owned by the caller.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	me := playerFrom(r.Context())

	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		if g.Owner != me.ID {
			return store.ErrNotFound
		}
		return nil
	})
	if err == nil {
		err = s.store.Delete(r.Context(), id)
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", id).Str("player", me.ID).Msg("game deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// resolveGuess prefers the textual form when present.
func resolveGuess(guess []int, text string, cfg game.Config) ([]int, error) {
	if text == "" {
		return guess, nil
	}
	return game.ParseSequence(text, cfg.Length, cfg.Colors)
}
