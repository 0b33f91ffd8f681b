package handler

import (
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/rest/middleware/auth"
	"github.com/uptrace/bunrouter"
)

// decodeJSON parses the request body into value.
func decodeJSON(req bunrouter.Request, value any) error {
	return sonic.ConfigDefault.NewDecoder(req.Body).Decode(value)
}

// respondJSON writes value with an explicit status code.
func respondJSON(w http.ResponseWriter, status int, value any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return sonic.ConfigDefault.NewEncoder(w).Encode(value)
}

// paramID parses the :id route parameter.
func paramID(req bunrouter.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.Param("id"), 10, 64)
	return id, err == nil
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(w http.ResponseWriter, req bunrouter.Request) (*types.User, bool) {
	user := auth.UserFromContext(req.Context())
	if user == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}

	return user, true
}

// requireStaff returns the authenticated user if they are staff or admin.
func requireStaff(w http.ResponseWriter, req bunrouter.Request) (*types.User, bool) {
	user, ok := requireUser(w, req)
	if !ok {
		return nil, false
	}

	if !user.IsStaff && !user.IsAdmin {
		http.Error(w, "Staff access required", http.StatusForbidden)
		return nil, false
	}

	return user, true
}

// requireAdmin returns the authenticated user if they are an admin.
func requireAdmin(w http.ResponseWriter, req bunrouter.Request) (*types.User, bool) {
	user, ok := requireUser(w, req)
	if !ok {
		return nil, false
	}

	if !user.IsAdmin {
		http.Error(w, "Admin access required", http.StatusForbidden)
		return nil, false
	}

	return user, true
}

// requireCreator returns the authenticated user if they are the creator.
func requireCreator(w http.ResponseWriter, req bunrouter.Request) (*types.User, bool) {
	user, ok := requireUser(w, req)
	if !ok {
		return nil, false
	}

	if !user.IsCreator {
		http.Error(w, "Creator access required", http.StatusForbidden)
		return nil, false
	}

	return user, true
}
