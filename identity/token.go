package identity

import (
	"errors"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// TokenInspector extracts the subject and expiry from provider ID tokens.
// When the config carries a JWKS URL the token signature is verified;
// otherwise claims are read unverified, which is acceptable client-side
// because the server independently validates identity on every request.
type TokenInspector struct {
	jwks     *keyfunc.JWKS
	parser   *jwt.Parser
	audience string
	issuer   string
}

// NewTokenInspector builds an inspector for the given provider config.
func NewTokenInspector(cfg Config) (*TokenInspector, error) {
	t := &TokenInspector{
		audience: cfg.ProjectID,
		issuer:   cfg.Issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})),
	}
	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{})
		if err != nil {
			return nil, err
		}
		t.jwks = jwks
	}
	return t, nil
}

// Subject returns the provider user id the token was issued for.
func (t *TokenInspector) Subject(token string) (string, error) {
	claims, err := t.claims(token)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

// ExpiresAt returns the token expiry.
func (t *TokenInspector) ExpiresAt(token string) (time.Time, error) {
	claims, err := t.claims(token)
	if err != nil {
		return time.Time{}, err
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), nil
	case int64:
		return time.Unix(exp, 0), nil
	default:
		return time.Time{}, errors.New("missing exp")
	}
}

func (t *TokenInspector) claims(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	var parsed *jwt.Token
	var err error
	if t.jwks != nil {
		parsed, err = t.parser.Parse(token, t.jwks.Keyfunc)
	} else {
		parsed, _, err = jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	}
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return nil, errors.New("token not valid yet")
	}
	if t.jwks != nil {
		if t.audience != "" && !claims.VerifyAudience(t.audience, false) {
			return nil, errors.New("invalid audience")
		}
		if t.issuer != "" && !claims.VerifyIssuer(t.issuer, false) {
			return nil, errors.New("invalid issuer")
		}
	}
	return claims, nil
}
