package token

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/weddinghub/guest-manager/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(secretKey string, expirationSeconds int) *tokenService {
	return &tokenService{
		secretKey:         secretKey,
		expirationSeconds: expirationSeconds,
	}
}

// Session domain object defining a group's session token
type Session struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn uint   `json:"expiresIn"`
}

type tokenService struct {
	secretKey         string
	expirationSeconds int
}

const groupIDClaim = "groupId"

// GenerateSessionToken signs a session token stating which group signed in.
// The token is the only session state; nothing is stored server side.
func (t tokenService) GenerateSessionToken(group *model.Group) (*Session, error) {
	now := time.Now()

	token := jwt.New()

	err := token.Set(jwt.IssuedAtKey, now.Unix())
	if err != nil {
		return nil, err
	}

	err = token.Set(jwt.ExpirationKey, now.Add(time.Duration(t.expirationSeconds)*time.Second).Unix())
	if err != nil {
		return nil, err
	}

	err = token.Set(groupIDClaim, group.ID)
	if err != nil {
		return nil, err
	}

	err = token.Set("groupName", group.Name)
	if err != nil {
		return nil, err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(t.secretKey)))
	if err != nil {
		return nil, fmt.Errorf("error signing session token for group %q: %v", group.Name, err)
	}

	return &Session{
		Token:     string(signed),
		TokenType: "bearer",
		ExpiresIn: uint(t.expirationSeconds),
	}, nil
}

// ParseRequest validates the session token found on the request and returns
// the group id it was issued to. The token is read from the Authorization
// header or the session cookie.
func (t tokenService) ParseRequest(request *http.Request) (uint, error) {
	token, err := jwt.ParseRequest(
		request,
		jwt.WithKey(jwa.HS256, []byte(t.secretKey)),
		jwt.WithValidate(true),
		jwt.WithHeaderKey("Authorization"),
		jwt.WithCookieKey(SessionCookieName),
	)
	if err != nil {
		return 0, err
	}

	return extractGroupID(token)
}

// SessionCookieName is the cookie the guest site stores its session token in.
const SessionCookieName = "sessionToken"

func extractGroupID(token jwt.Token) (uint, error) {
	claim, ok := token.Get(groupIDClaim)
	if !ok {
		return 0, fmt.Errorf("%s not found in claims", groupIDClaim)
	}

	// private claims are decoded from JSON, so numbers arrive as float64
	switch id := claim.(type) {
	case float64:
		return uint(id), nil
	case uint:
		return id, nil
	default:
		return 0, fmt.Errorf("unexpected %s claim type %T", groupIDClaim, claim)
	}
}
