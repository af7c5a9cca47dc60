package auth

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/noteduco342/rep-messaging/internal/apperr"
)

// Claims accepts the member id either as the standard "sub" claim or as a
// "user_id" claim, string or number.
type Claims struct {
	UserID any `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the verified caller. It is only ever produced by Verify.
type Identity struct {
	MemberID uint
}

// Authenticator verifies HS256 tokens issued by the identity service.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Verify checks signature, algorithm and expiry, then resolves the member id.
func (a *Authenticator) Verify(tokenString string) (Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Identity{}, apperr.Auth("missing token")
	}

	claims := &Claims{}
	token, err := a.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, apperr.Wrap(apperr.CodeAuth, "token expired", err)
		}
		return Identity{}, apperr.Wrap(apperr.CodeAuth, "invalid token", err)
	}
	if !token.Valid {
		return Identity{}, apperr.Auth("invalid token")
	}

	memberID, err := claims.memberID()
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.CodeAuth, "invalid token subject", err)
	}
	return Identity{MemberID: memberID}, nil
}

func (c *Claims) memberID() (uint, error) {
	if c.Subject != "" {
		return parseMemberID(c.Subject)
	}
	switch v := c.UserID.(type) {
	case string:
		return parseMemberID(v)
	case float64:
		if v <= 0 || v != float64(uint32(v)) {
			return 0, errors.New("user_id out of range")
		}
		return uint(v), nil
	case json.Number:
		return parseMemberID(v.String())
	default:
		return 0, errors.New("token carries no member id")
	}
}

func parseMemberID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("member id must be positive")
	}
	return uint(id), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// TokenFromCarriers picks the first token present, in order: the "token"
// query parameter, then the Authorization header. The handshake payload is
// the last carrier and is read by the socket layer after upgrade.
func TokenFromCarriers(queryToken, authorizationHeader string) string {
	if t := strings.TrimSpace(queryToken); t != "" {
		return t
	}
	return BearerToken(authorizationHeader)
}
