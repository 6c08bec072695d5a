package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SessionCookieName is the cookie carrying the signed session ID.
const SessionCookieName = "commons.sid"

// CookieSigner signs session IDs so a tampered cookie is rejected before any store lookup.
type CookieSigner struct {
	secret []byte
}

func NewCookieSigner(secret string) CookieSigner {
	return CookieSigner{secret: []byte(secret)}
}

// Sign returns "<id>.<mac>".
func (s CookieSigner) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Unsign returns the session ID if value carries a valid signature.
func (s CookieSigner) Unsign(value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", false
	}
	id, sig := value[:i], value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", false
	}
	return id, true
}

func (s CookieSigner) mac(id string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
