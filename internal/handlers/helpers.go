package handlers

import (
	"net/http"
	"strconv"

	"umd-backend/internal/auth"
	"umd-backend/internal/middleware"
	"umd-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// caller pulls the authenticated identity injected by the middleware.
// Writes a 401 and returns false when the route was wired without it.
func caller(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Message(w, http.StatusUnauthorized, "Authorization required")
	}
	return id, ok
}

func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	return v, err == nil
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

// queryIntPtr returns nil when the parameter is absent or malformed.
func queryIntPtr(r *http.Request, name string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &v
}
