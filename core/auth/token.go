package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/shulehub/shule/core"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	NowFunc = time.Now // mockable
)

// Codec encodes and decodes signed, expiring identity tokens.
// It holds the only copy of the signing secret; it is stateless and
// safe for concurrent use.
type Codec struct {
	issuer string
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
}

func NewCodec(conf *core.Config) *Codec {
	return &Codec{
		issuer: conf.AppName,
		secret: []byte(conf.SecretKey),
		ttl:    conf.Server.JWTExpirationDelta,
		method: jwt.SigningMethodHS256,
	}
}

// NewClaims builds complete claims for an identity at issuance time.
func (c *Codec) NewClaims(userID, name, role string, age int, gender string) Claims {
	now := NowFunc()
	return Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    c.issuer,
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(c.ttl).Unix(),
		},
		Name:   name,
		Role:   role,
		Age:    age,
		Gender: gender,
	}
}

// Encode signs the claims into a compact token string.
func (c *Codec) Encode(claims Claims) (string, error) {
	token := jwt.NewWithClaims(c.method, claims)
	ss, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// Decode verifies the token's signature and expiry and returns its claims.
// Expired tokens fail with ErrTokenExpired; any other failure (bad signature,
// malformed payload, wrong algorithm) fails with ErrInvalidToken.
func (c *Codec) Decode(token string) (Claims, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != c.method {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
