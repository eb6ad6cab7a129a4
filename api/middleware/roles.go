package middleware

import (
	"net/http"

	"github.com/medrota/clinicrota-backend/api/responses"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
)

var roleRank = map[enums.UserRole]int{
	enums.UserRoleViewer:  1,
	enums.UserRoleManager: 2,
	enums.UserRoleAdmin:   3,
}

// RequireRole gates a route behind a minimum role. Admins pass every gate,
// managers pass viewer and manager gates.
func RequireRole(minRole enums.UserRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := enums.UserRole(RoleFromContext(r.Context()))
			if roleRank[actor] < roleRank[minRole] || roleRank[minRole] == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
