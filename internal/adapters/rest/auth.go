package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/example/kanban/internal/config"
	"github.com/example/kanban/internal/ctxutil"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

const bearerPrefix = "Bearer "

// Authenticator validates bearer JWTs and yields the token subject.
type Authenticator struct {
	secret   []byte
	jwks     *keyfunc.JWKS
	audience string
	issuer   string
	parser   *jwt.Parser
}

// NewAuthenticator builds an Authenticator for cfg. It returns nil for auth mode
// "none". In jwks mode the key set is fetched once and refreshed in the background.
func NewAuthenticator(cfg config.AuthConfig, logger *log.Logger) (*Authenticator, error) {
	switch cfg.Mode {
	case config.AuthModeNone, "":
		return nil, nil
	case config.AuthModeHS256:
		return newHS256Authenticator([]byte(cfg.Secret), cfg.Audience, cfg.Issuer), nil
	case config.AuthModeJWKS:
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				logger.WithError(err).Warn("jwks refresh failed")
			},
		})
		if err != nil {
			return nil, fmt.Errorf("jwks: %w", err)
		}
		return newJWKSAuthenticator(jwks, cfg.Audience, cfg.Issuer), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", cfg.Mode)
	}
}

func newHS256Authenticator(secret []byte, audience, issuer string) *Authenticator {
	return &Authenticator{
		secret:   secret,
		audience: audience,
		issuer:   issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
	}
}

func newJWKSAuthenticator(jwks *keyfunc.JWKS, audience, issuer string) *Authenticator {
	return &Authenticator{
		jwks:     jwks,
		audience: audience,
		issuer:   issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})),
	}
}

// Close stops the background JWKS refresh.
func (a *Authenticator) Close() {
	if a != nil && a.jwks != nil {
		a.jwks.EndBackground()
	}
}

// SubjectFromAuthHeader extracts the subject from an Authorization header value.
func (a *Authenticator) SubjectFromAuthHeader(header string) (string, error) {
	token, err := bearerToken(header)
	if err != nil {
		return "", err
	}
	return a.SubjectFromToken(token)
}

// SubjectFromToken verifies a raw JWT and returns its "sub" claim.
func (a *Authenticator) SubjectFromToken(tokenStr string) (string, error) {
	parsed, err := a.parser.Parse(tokenStr, a.keyFor)
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if a.audience != "" && !claims.VerifyAudience(a.audience, true) {
		return "", errors.New("invalid audience")
	}
	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

func (a *Authenticator) keyFor(t *jwt.Token) (any, error) {
	if a.jwks != nil {
		return a.jwks.Keyfunc(t)
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid signing method")
	}
	return a.secret, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuthorization
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errBadAuthorization
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if strings.Count(token, ".") != 2 {
		return "", errBadAuthorization
	}
	return token, nil
}

// requireBearer rejects requests without a valid token and records the
// subject as the request actor.
func requireBearer(auth *Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, err := auth.SubjectFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="kanban"`)
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			req := c.Request()
			c.SetRequest(req.WithContext(ctxutil.WithActor(req.Context(), subject)))
			return next(c)
		}
	}
}
