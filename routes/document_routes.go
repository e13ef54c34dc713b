package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"shipproc/handlers"
	"shipproc/middleware"
)

// RegisterDocumentRoutes registers all document management routes
func RegisterDocumentRoutes(api *mux.Router) {

	api.Handle("/documents", middleware.RequirePermission("documents:read")(
		http.HandlerFunc(handlers.GetDocuments))).Methods("GET")

	api.Handle("/documents", middleware.RequirePermission("documents:create")(
		http.HandlerFunc(handlers.UploadDocument))).Methods("POST")

	api.Handle("/documents/categories", middleware.RequirePermission("documents:read")(
		http.HandlerFunc(handlers.GetDocumentCategories))).Methods("GET")

	api.Handle("/documents/categories", middleware.RequirePermission("documents:create")(
		http.HandlerFunc(handlers.CreateDocumentCategory))).Methods("POST")

	api.Handle("/documents/{id}", middleware.RequirePermission("documents:read")(
		http.HandlerFunc(handlers.GetDocument))).Methods("GET")

	api.Handle("/documents/{id}", middleware.RequirePermission("documents:update")(
		http.HandlerFunc(handlers.UpdateDocument))).Methods("PUT")

	api.Handle("/documents/{id}", middleware.RequirePermission("documents:delete")(
		http.HandlerFunc(handlers.DeleteDocument))).Methods("DELETE")

	api.Handle("/documents/{id}/download", middleware.RequirePermission("documents:read")(
		http.HandlerFunc(handlers.DownloadDocument))).Methods("GET")

	// Versioning
	api.Handle("/documents/{id}/versions", middleware.RequirePermission("documents:update")(
		http.HandlerFunc(handlers.UploadDocumentVersion))).Methods("POST")

	api.Handle("/documents/{id}/versions", middleware.RequirePermission("documents:read")(
		http.HandlerFunc(handlers.GetDocumentVersions))).Methods("GET")

	api.Handle("/documents/{id}/versions/{version}/download", middleware.RequirePermission("documents:read")(
		http.HandlerFunc(handlers.DownloadDocumentVersion))).Methods("GET")

	api.Handle("/documents/{id}/versions/{version}/rollback", middleware.RequirePermission("documents:update")(
		http.HandlerFunc(handlers.RollbackDocumentVersion))).Methods("POST")
}
