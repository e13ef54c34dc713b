package middleware

import (
	"net/http"

	"shipproc/config"
	"shipproc/models"
	"shipproc/utils"
)

// RequirePermission checks that the authenticated user holds the given
// permission ("resource:action", wildcards allowed on the role side).
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			var user models.User
			if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", claims.UserID).Error; err != nil {
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}

			for _, userPerm := range user.GetAllPermissions() {
				if utils.MatchesPermission(userPerm, permission) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireAnyPermission checks that the user holds at least one of the
// given permissions.
func RequireAnyPermission(permissions []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			var user models.User
			if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", claims.UserID).Error; err != nil {
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}

			userPerms := user.GetAllPermissions()
			for _, required := range permissions {
				for _, userPerm := range userPerms {
					if utils.MatchesPermission(userPerm, required) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

// GetUserPermissions returns the permission names of the authenticated
// user, for the profile endpoint.
func GetUserPermissions(r *http.Request) []string {
	claims := GetClaims(r)
	if claims == nil {
		return nil
	}
	var user models.User
	if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil
	}
	return user.GetAllPermissions()
}
