package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

var ErrNotJWT = errors.New("auth: token is not a jwt")

// Credential is the opaque bearer token sent to the remote service.
// An empty credential sends no Authorization header.
type Credential struct {
	token string
}

func NewCredential(token string) Credential {
	return Credential{token: strings.TrimSpace(token)}
}

func (c Credential) Empty() bool { return c.token == "" }

// Header returns the Authorization value, or "" when empty.
func (c Credential) Header() string {
	if c.Empty() {
		return ""
	}
	return bearerPrefix + c.token
}

// String never reveals the token.
func (c Credential) String() string {
	if c.Empty() {
		return "<none>"
	}
	return "<redacted>"
}

// Identity reads the operator out of the token.
// Opaque tokens return ErrNotJWT and are still usable as credentials.
func (c Credential) Identity() (Identity, error) {
	return ParseIdentity(c.token)
}

// ParseIdentity reads the Claims shape from token. The signature is not checked.
func ParseIdentity(token string) (Identity, error) {
	if token == "" || strings.Count(token, ".") != 2 {
		return Identity{}, ErrNotJWT
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}
	if claims.TokenType != "" && claims.TokenType != TokenTypeAccess {
		return Identity{}, errors.New("auth: token_type is not access")
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return Identity{UserID: userID, WorkspaceID: claims.WorkspaceID, Role: claims.Role}, nil
}
