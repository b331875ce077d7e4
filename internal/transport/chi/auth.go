package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Probes and scrapes stay reachable without a key.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuth requires "Authorization: Bearer <key>" with one of keys on every
// non-public route. Empty keys are ignored; with none left the middleware is a no-op.
func BearerAuth(keys []string) func(http.Handler) http.Handler {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed = append(allowed, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(allowed) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="mediasense"`)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, err)
				return
			}
			if !anyMatch(allowed, token) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="mediasense", error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the credential; the scheme name is case-insensitive.
func bearerToken(header string) ([]byte, string) {
	if header == "" {
		return nil, "missing authorization header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, "authorization header must use Bearer scheme"
	}
	return []byte(strings.TrimSpace(token)), ""
}

// anyMatch compares against every key so timing does not reveal which one matched.
func anyMatch(keys [][]byte, token []byte) bool {
	matched := 0
	for _, k := range keys {
		matched |= subtle.ConstantTimeCompare(k, token)
	}
	return matched == 1
}
