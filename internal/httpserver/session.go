// internal/httpserver/session.go
//
// Anonymous player identity.
// Every caller of the game routes gets a signed HS256 token carrying a random
// player ID and a petname handle. The token travels as a cookie (or as an
// Authorization bearer header) and is what ties a game to its owner.
// Nothing about players is stored server-side.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
)

const playerCookieName = "mastermind_player"

// player is placed into request context by withPlayer.
type player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ctxPlayerKey struct{}

// playerFrom returns the player injected by withPlayer, or nil.
func playerFrom(ctx context.Context) *player {
	p, _ := ctx.Value(ctxPlayerKey{}).(*player)
	return p
}

type playerClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// sessions signs and verifies player tokens.
type sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// sign issues a token for p that expires after the configured TTL.
func (s *sessions) sign(p player) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, playerClaims{
		Name: p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parse verifies tok and returns the player it names.
func (s *sessions) parse(tok string) (*player, error) {
	claims := &playerClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !t.Valid || claims.Subject == "" {
		return nil, errors.New("invalid player token")
	}
	return &player{ID: claims.Subject, Name: claims.Name}, nil
}

// withPlayer resolves the caller's token, minting a fresh player when it is
// missing or invalid. It never rejects a request.
func (s *sessions) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p *player
		if tok := bearerOrCookie(r); tok != "" {
			var err error
			if p, err = s.parse(tok); err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("discarding player token")
			}
		}
		if p == nil {
			p = &player{ID: genID(), Name: petname.Generate(2, "-")}
			tok, exp, err := s.sign(*p)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed", "")
				return
			}
			s.setCookie(w, tok, exp)
			hlog.FromRequest(r).Info().Str("player", p.ID).Str("name", p.Name).Msg("new player")
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setCookie writes the player token cookie with appropriate security attributes.
func (s *sessions) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the player cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(playerCookieName); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22-char URL-safe, crypto-random identifier.
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
