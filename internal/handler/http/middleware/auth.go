package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/auth"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromRequest builds the authenticated caller from JWT claims.
// Returns false when the token is missing or malformed.
func PrincipalFromRequest(r *http.Request) (user.Principal, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Principal{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Principal{}, false
	}

	p := user.Principal{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if roleStr, ok := claims["role"].(string); ok {
		p.Role = user.Role(roleStr)
	}
	if teamID, ok := claims["team_id"].(string); ok && teamID != "" {
		p.TeamID = &teamID
	}
	return p, true
}
