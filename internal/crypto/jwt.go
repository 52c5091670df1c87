package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenOptions is the process-wide token configuration: signing
// secret, lifetime and the expected audience/issuer pair.
type TokenOptions struct {
	Secret   string
	TTL      time.Duration
	Audience string
	Issuer   string
}

// Claims is the payload carried by an identity token. The subject is
// the account ID, rendered as a string per RFC 7519.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID returns the numeric account ID encoded in the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// IssueToken signs a token identifying the given account.
func IssueToken(userID int64, email string, opts TokenOptions) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    opts.Issuer,
			Audience:  jwt.ClaimStrings{opts.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.TTL)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(opts.Secret))
}

// VerifyToken parses and validates a token string. It fails with
// ErrInvalidToken when the signature does not match, the token has
// expired, or the audience/issuer differ from the configured values.
func VerifyToken(tokenString string, opts TokenOptions) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(opts.Secret), nil
	}, jwt.WithIssuer(opts.Issuer), jwt.WithAudience(opts.Audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
