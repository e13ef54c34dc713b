package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"shipproc/handlers"
	"shipproc/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handleProfile).Methods("GET")
	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")

	// Notifications belong to the authenticated user, no extra permission
	api.HandleFunc("/notifications", handlers.GetMyNotifications).Methods("GET")
	api.HandleFunc("/notifications/read-all", handlers.MarkAllNotificationsRead).Methods("POST")
	api.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods("POST")

	RegisterProcurementRoutes(api)
	RegisterDocumentRoutes(api)
	RegisterComplianceRoutes(api)

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequirePermission("user:manage"))
	admin.HandleFunc("/users", handlers.GetAllUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/role", handlers.AssignUserRole).Methods("PUT")
	admin.HandleFunc("/roles", handlers.GetRoles).Methods("GET")
	admin.HandleFunc("/permissions", handlers.GetPermissions).Methods("GET")

	return r
}

// handleProfile returns user profile information
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	user := middleware.GetUser(r)
	permissions := middleware.GetUserPermissions(r)

	var globalRoleName string
	if user.RoleModel != nil {
		globalRoleName = user.RoleModel.Name
	}

	response := map[string]interface{}{
		"userID":      claims.UserID,
		"name":        user.Name,
		"email":       user.Email,
		"role_id":     user.RoleID,
		"global_role": globalRoleName,
		"permissions": permissions,
	}
	json.NewEncoder(w).Encode(response)
}
