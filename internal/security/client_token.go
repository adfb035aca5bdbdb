package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const clientIssuer = "vocabdrill"

// ErrInvalidClientToken is returned for tokens that fail signature or claim checks
var ErrInvalidClientToken = errors.New("invalid client token")

// ClientClaims identifies an anonymous browser. UserID is set when the
// upstream site has told us who the signed-in user is.
type ClientClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid,omitempty"`
}

// ClientID returns the anonymous client identifier
func (c *ClientClaims) ClientID() string {
	return c.Subject
}

// ClientTokens signs and verifies client identity cookies with HS256
type ClientTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewClientTokens creates a token issuer
func NewClientTokens(secret string, ttl time.Duration) *ClientTokens {
	return &ClientTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns how long issued tokens stay valid
func (ct *ClientTokens) TTL() time.Duration {
	return ct.ttl
}

// Issue signs a token for clientID. userID may be zero.
func (ct *ClientTokens) Issue(clientID string, userID int64) (string, error) {
	if clientID == "" {
		return "", errors.New("client ID is required")
	}
	now := ct.now()
	claims := ClientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    clientIssuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ct.ttl)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ct.secret)
}

// Parse verifies a token and returns its claims
func (ct *ClientTokens) Parse(token string) (*ClientClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(clientIssuer),
		jwt.WithTimeFunc(ct.now),
	)
	claims := &ClientClaims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ct.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidClientToken
	}
	return claims, nil
}
