package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"lenslight/internal/repository"
)

type contextKey string

// SubjectKey carries the authenticated subject id through the request context.
const SubjectKey contextKey = "subjectID"

const sessionCookie = "session_token"

// Middleware guards admin routes: it verifies the presented credential and
// requires an "admin" role record for the subject. Rejection messages stay
// generic so role existence is not leaked.
type Middleware struct {
	Verifier TokenVerifier
	Roles    repository.RoleRepository
}

func NewMiddleware(verifier TokenVerifier, roles repository.RoleRepository) *Middleware {
	return &Middleware{Verifier: verifier, Roles: roles}
}

func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			rejectJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		subjectID, err := m.Verifier.Verify(token)
		if err != nil {
			rejectJSON(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		role, err := m.Roles.GetRole(r.Context(), subjectID)
		if err != nil {
			log.Printf("Role lookup failed for subject %s: %v", subjectID, err)
			rejectJSON(w, http.StatusForbidden, "Forbidden")
			return
		}
		if role != "admin" {
			rejectJSON(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, subjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rejectJSON writes the {error: message} body the API clients expect.
func rejectJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// extractToken reads the credential from the Authorization header or the
// session cookie, in that order.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
