package server

import (
	"net/http"
	"strings"
)

// Default role policy for the dev backend.
var rolePermissions = map[string][]string{
	"student": {
		"test:list",
		"test:take",
		"result:view-own",
		"content:view",
	},
	"trainer": {
		"test:list",
		"result:view-all",
		"answers:view",
		"result:finalize",
		"batch:view",
		"attendance:mark",
		"webinar:manage",
		"content:view",
	},
	"admin": {
		"*", // everything
	},
}

func roleHas(role, perm string) bool {
	for _, p := range rolePermissions[role] {
		if p == "*" || p == perm {
			return true
		}
		if strings.HasSuffix(p, "*") && strings.HasPrefix(perm, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}

// Require enforces a single permission on the caller's role.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || !roleHas(claims.Role, perm) {
				writeFail(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny enforces that the role holds at least one of the permissions.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeFail(w, http.StatusForbidden, "forbidden")
				return
			}
			for _, p := range perms {
				if roleHas(claims.Role, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeFail(w, http.StatusForbidden, "forbidden")
		})
	}
}
