package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DisplayDateLayout  = "02/01/2006"
	PublicDateLayout   = "Monday, 02/01/2006"
	RegisteredAtLayout = "02/01/2006, 15:04:05"
	NotAvailable       = "N/A"
	MissingDate        = "-"
)

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
		Roles     []string `json:"roles,omitempty"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// TokenValidator checks Supabase access tokens against the project JWKS and,
// when configured, the HS256 project secret.
type TokenValidator struct {
	jwksURL string
	secret  []byte

	mu   sync.Mutex
	jwks *keyfunc.JWKS
}

func NewTokenValidator(supabaseURL, jwtSecret string) *TokenValidator {
	v := &TokenValidator{secret: []byte(jwtSecret)}
	if supabaseURL != "" {
		v.jwksURL = fmt.Sprintf("%s/auth/v1/.well-known/jwks.json", strings.TrimRight(supabaseURL, "/"))
	}
	return v
}

func (v *TokenValidator) keySet() (*keyfunc.JWKS, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		return v.jwks, nil
	}
	if v.jwksURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwks, err := keyfunc.Get(v.jwksURL, keyfunc.Options{
		Ctx:               context.Background(),
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load jwks: %w", err)
	}
	v.jwks = jwks
	return jwks, nil
}

func (v *TokenValidator) keyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
		if len(v.secret) == 0 {
			return nil, errors.New("hmac token but no jwt secret configured")
		}
		return v.secret, nil
	}
	jwks, err := v.keySet()
	if err != nil {
		return nil, err
	}
	return jwks.Keyfunc(token)
}

func (v *TokenValidator) Validate(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, v.keyfunc,
		jwt.WithValidMethods([]string{"HS256", "RS256", "ES256"}))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// Close stops the background JWKS refresh.
func (v *TokenValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		v.jwks.EndBackground()
		v.jwks = nil
	}
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// FormatDate renders t in loc, or fallback when t is nil.
func FormatDate(t *time.Time, layout string, loc *time.Location, fallback string) string {
	if t == nil || t.IsZero() {
		return fallback
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}

// OrNA returns "N/A" for blank values.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
