// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Code" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's game
//   - GET  /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Each player gets one attempt per day. The code is derived from date + salt,
// so sessions only need to live in memory while the day is played.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	board    *daily.Board
	salt     string
	cfg      game.Config
	now      func() time.Time
	sessions map[string]*dailySession // keyed by playerID|date
	mu       sync.Mutex               // guards sessions and the games they hold
}

// dailySession holds the in-progress game for one player on one date.
type dailySession struct {
	Player *player
	Date   string
	Game   *game.Game
	Start  time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router, board *daily.Board) {
	d := &dailyServer{
		board:    board,
		salt:     s.cfg.DailySalt,
		cfg:      s.cfg.Game,
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	s.daily = d
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", d.handleNew)
		r.Post("/guess", d.handleGuess)
		r.Get("/leaderboard", d.handleLeaderboard)
	})
}

type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
	game.Config
}

// handleNew creates or reuses today's session.
// A player with a recorded result for today gets Played=true and no game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	me := playerFrom(r.Context())
	now := d.now()
	date := daily.DateKey(now)

	if d.board.AlreadyPlayed(me.ID, date) {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true, Config: d.cfg})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for k, sess := range d.sessions {
		if sess.Date != date {
			delete(d.sessions, k)
		}
	}
	key := me.ID + "|" + date
	if sess, ok := d.sessions[key]; ok {
		writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.Game.ID, Date: date, Config: d.cfg})
		return
	}

	code, err := daily.Code(now, d.salt, d.cfg.Length, d.cfg.Colors)
	if err != nil {
		fail(w, r, err)
		return
	}
	g, err := game.New(d.cfg, code)
	if err != nil {
		fail(w, r, err)
		return
	}
	g.Owner = me.ID
	d.sessions[key] = &dailySession{Player: me, Date: date, Game: g, Start: now}
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.ID, Date: date, Config: d.cfg})
}

type dailyGuessRes struct {
	Exact   int    `json:"exact"`
	Partial int    `json:"partial"`
	State   string `json:"state"` // in_progress | won | lost | locked
	Turns   int    `json:"turns"`
}

// handleGuess applies a guess to today's session and records the result
// on the board once the game ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	me := playerFrom(r.Context())
	now := d.now()
	date := daily.DateKey(now)

	d.mu.Lock()
	defer d.mu.Unlock()
	sess, ok := d.sessions[me.ID+"|"+date]
	if !ok || sess.Game.ID != req.GameID {
		writeError(w, http.StatusConflict, "no_session", "start today's game with POST /daily/new")
		return
	}
	g := sess.Game
	if g.Finished {
		writeJSON(w, http.StatusOK, dailyGuessRes{State: "locked", Turns: len(g.Turns)})
		return
	}

	guess, err := resolveGuess(req.Guess, req.Text, g.Config)
	if err != nil {
		fail(w, r, err)
		return
	}
	fb, state, err := g.ApplyGuess(guess)
	if err != nil {
		fail(w, r, err)
		return
	}

	res := dailyGuessRes{Exact: fb.Exact, Partial: fb.Partial, State: "in_progress", Turns: len(g.Turns)}
	if g.Finished {
		res.State = string(state)
		d.board.Record(daily.Result{
			PlayerID:  me.ID,
			Name:      sess.Player.Name,
			Date:      date,
			Turns:     len(g.Turns),
			ElapsedMs: now.Sub(sess.Start).Milliseconds(),
			Won:       g.Won,
		})
		hlog.FromRequest(r).Info().Str("player", me.ID).Str("date", date).Str("state", res.State).Int("turns", res.Turns).Msg("daily finished")
	}
	writeJSON(w, http.StatusOK, res)
}

type lbRes struct {
	Date string         `json:"date"`
	Top  []daily.Result `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: d.board.Leaderboard(date, 20)})
}
