package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 7 * 24 * time.Hour

// Claims is the token payload: the registered claims plus the username for
// display. The subject is the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 access tokens. The same secret, issuer and audience
// are handed to the verifying middleware.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewIssuer(secret, issuer, audience string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, audience: audience, now: time.Now}, nil
}

func (i *Issuer) Secret() []byte   { return i.secret }
func (i *Issuer) Issuer() string   { return i.issuer }
func (i *Issuer) Audience() string { return i.audience }

// CreateToken returns a signed token for the user and when it expires.
func (i *Issuer) CreateToken(userID, username string) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expires, nil
}
