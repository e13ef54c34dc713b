package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"shipproc/handlers"
	"shipproc/middleware"
)

// RegisterComplianceRoutes registers the compliance reporting routes
func RegisterComplianceRoutes(api *mux.Router) {

	api.Handle("/compliance/reports", middleware.RequirePermission("compliance:create")(
		http.HandlerFunc(handlers.CreateComplianceReport))).Methods("POST")

	api.Handle("/compliance/reports", middleware.RequirePermission("compliance:read")(
		http.HandlerFunc(handlers.GetComplianceReports))).Methods("GET")

	api.Handle("/compliance/reports/{id}", middleware.RequirePermission("compliance:read")(
		http.HandlerFunc(handlers.GetComplianceReport))).Methods("GET")

	api.Handle("/compliance/reports/{id}/findings", middleware.RequirePermission("compliance:update")(
		http.HandlerFunc(handlers.AddComplianceFinding))).Methods("POST")

	api.Handle("/compliance/reports/{id}/submit", middleware.RequirePermission("compliance:update")(
		http.HandlerFunc(handlers.SubmitComplianceReport))).Methods("POST")

	api.Handle("/compliance/reports/{id}/close", middleware.RequirePermission("compliance:update")(
		http.HandlerFunc(handlers.CloseComplianceReport))).Methods("POST")

	api.Handle("/compliance/reports/{id}/export/excel", middleware.RequirePermission("compliance:export")(
		http.HandlerFunc(handlers.ExportComplianceReportToExcel))).Methods("GET")
}
