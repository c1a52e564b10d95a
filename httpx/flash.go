package httpx

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mbolis/quick-form/log"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"

	flashCookie = "flash"
	flashTTL    = 5 * time.Minute
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

// Flasher keeps pending flash messages in a signed cookie.
type Flasher struct {
	key []byte
}

func NewFlasher(secret string) *Flasher {
	return &Flasher{key: []byte(secret)}
}

// Add queues a message, keeping any still pending for this client.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, kind, msg string) error {
	flashes := append(f.read(r), Flash{kind, msg})

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	})
	signed, err := token.SignedString(f.key)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending messages and clears the cookie. Messages with a
// bad signature or past their expiry are dropped.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	if _, err := r.Cookie(flashCookie); err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return f.read(r)
}

func (f *Flasher) read(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var claims flashClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (any, error) {
		return f.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return claims.Flashes
}

// Notify queues a message, logging instead of failing the request when the
// cookie cannot be produced.
func (f *Flasher) Notify(w http.ResponseWriter, r *http.Request, kind, msg string) {
	if err := f.Add(w, r, kind, msg); err != nil {
		log.Warnf("flash.add: %s", err)
	}
}
