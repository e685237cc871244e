package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	cwConfig "github.com/usecakework/monolog-viewer/lib/config"
)

var (
	ErrNotLoggedIn  = errors.New("no access token found; run monolog login")
	ErrTokenExpired = errors.New("access token has expired; run monolog login")
)

const (
	TypeBearer = "BEARER"
	TypeNone   = "NONE"
)

type Credentials struct {
	Type        string // either BEARER or NONE
	AccessToken string // "" if type is NONE
}

type CredentialsProvider interface {
	GetCredentials() (*Credentials, error)
}

// BearerCredentialsProvider reads the token saved by `monolog login`.
type BearerCredentialsProvider struct {
	ConfigFile string
}

func (p BearerCredentialsProvider) GetCredentials() (*Credentials, error) {
	config, err := cwConfig.LoadConfig(p.ConfigFile)
	if err != nil {
		return nil, err
	}

	if config.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}

	if IsTokenExpired(config.AccessToken) {
		return nil, ErrTokenExpired
	}

	return &Credentials{
		Type:        TypeBearer,
		AccessToken: config.AccessToken,
	}, nil
}

// NoCredentialsProvider is used when the viewer runs without AUTH_MODE.
type NoCredentialsProvider struct{}

func (NoCredentialsProvider) GetCredentials() (*Credentials, error) {
	return &Credentials{Type: TypeNone}, nil
}

// IsTokenExpired only looks at the exp claim; the signature is checked by the
// server. Tokens that are not JWTs are never considered expired.
func IsTokenExpired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(time.Now(), false)
}
