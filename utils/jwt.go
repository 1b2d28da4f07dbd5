package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AdminSubject is the subject of every admin session token.
const AdminSubject = "studio-admin"

var (
	ErrAdminDisabled     = errors.New("admin mode is not configured")
	ErrInvalidPassphrase = errors.New("invalid admin passphrase")
)

// AdminTokens issues and checks admin session tokens. The passphrase is shared
// by whoever runs the studio; a token only unlocks slot toggling.
type AdminTokens struct {
	passphraseHash []byte
	secret         []byte
	ttl            time.Duration
}

// NewAdminTokens returns nil when either the passphrase hash or the signing secret is empty.
func NewAdminTokens(passphraseHash, secret string, ttl time.Duration) *AdminTokens {
	if passphraseHash == "" || secret == "" {
		return nil
	}
	return &AdminTokens{passphraseHash: []byte(passphraseHash), secret: []byte(secret), ttl: ttl}
}

// Login checks the passphrase against the bcrypt hash and returns a signed token.
func (a *AdminTokens) Login(passphrase string) (string, time.Time, error) {
	if a == nil {
		return "", time.Time{}, ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(a.passphraseHash, []byte(passphrase)); err != nil {
		return "", time.Time{}, ErrInvalidPassphrase
	}
	now := time.Now()
	exp := now.Add(a.ttl)
	claims := jwt.MapClaims{
		"sub": AdminSubject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Validate parses tokenString and checks that it is an unexpired admin token.
func (a *AdminTokens) Validate(tokenString string) error {
	if a == nil {
		return ErrAdminDisabled
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return errors.New("invalid token")
	}
	if sub, _ := claims["sub"].(string); sub != AdminSubject {
		return errors.New("token is not an admin token")
	}
	return nil
}
