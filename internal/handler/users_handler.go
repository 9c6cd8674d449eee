package handler

import (
	"net/http"

	"dmchat/internal/pkg/resp"
)

// HandleListUsers returns the identified users in join order.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := deps.Hub.Users()

		resp.RespondSuccess(w, r, map[string]any{
			"users": users,
			"count": len(users),
		})
	}
}
