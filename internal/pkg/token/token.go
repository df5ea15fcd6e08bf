package token

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Verifier checks bearer access tokens issued by the identity service. This
// service never mints tokens, it only validates them.
type Verifier struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewVerifier(secretKey string) *Verifier {
	return &Verifier{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (v *Verifier) JWTAuth() *jwtauth.JWTAuth {
	return v.tokenAuth
}
