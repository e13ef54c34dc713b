package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"shipproc/handlers"
	"shipproc/middleware"
)

// RegisterProcurementRoutes wires the requisition-to-PO cycle.
func RegisterProcurementRoutes(api *mux.Router) {

	// Requisitions
	api.Handle("/requisitions", middleware.RequirePermission("requisition:create")(
		http.HandlerFunc(handlers.CreateRequisition))).Methods("POST")

	api.Handle("/requisitions", middleware.RequirePermission("requisition:read")(
		http.HandlerFunc(handlers.GetRequisitions))).Methods("GET")

	api.Handle("/requisitions/{id}", middleware.RequirePermission("requisition:read")(
		http.HandlerFunc(handlers.GetRequisition))).Methods("GET")

	api.Handle("/requisitions/{id}/submit", middleware.RequirePermission("requisition:update")(
		http.HandlerFunc(handlers.SubmitRequisition))).Methods("POST")

	api.Handle("/requisitions/{id}/approve", middleware.RequirePermission("requisition:approve")(
		http.HandlerFunc(handlers.ApproveRequisition))).Methods("POST")

	api.Handle("/requisitions/{id}/reject", middleware.RequirePermission("requisition:approve")(
		http.HandlerFunc(handlers.RejectRequisition))).Methods("POST")

	api.Handle("/requisitions/{id}/convert", middleware.RequirePermission("requisition:convert")(
		http.HandlerFunc(handlers.ConvertRequisitionToRFQ))).Methods("POST")

	// RFQs and quotes
	api.Handle("/rfqs", middleware.RequirePermission("rfq:create")(
		http.HandlerFunc(handlers.CreateRFQ))).Methods("POST")

	api.Handle("/rfqs", middleware.RequirePermission("rfq:read")(
		http.HandlerFunc(handlers.GetRFQs))).Methods("GET")

	api.Handle("/rfqs/{id}", middleware.RequirePermission("rfq:read")(
		http.HandlerFunc(handlers.GetRFQ))).Methods("GET")

	api.Handle("/rfqs/{id}/cancel", middleware.RequirePermission("rfq:update")(
		http.HandlerFunc(handlers.CancelRFQ))).Methods("POST")

	api.Handle("/rfqs/{id}/quotes", middleware.RequirePermission("quote:create")(
		http.HandlerFunc(handlers.SubmitQuote))).Methods("POST")

	api.Handle("/rfqs/{id}/quotes", middleware.RequirePermission("quote:read")(
		http.HandlerFunc(handlers.GetQuotesForRFQ))).Methods("GET")

	// Comparison and export
	api.Handle("/rfqs/{id}/compare", middleware.RequirePermission("rfq:compare")(
		http.HandlerFunc(handlers.CompareQuotes))).Methods("POST")

	api.Handle("/rfqs/{id}/comparison/export/excel", middleware.RequirePermission("rfq:compare")(
		http.HandlerFunc(handlers.ExportComparisonToExcel))).Methods("GET")

	api.Handle("/rfqs/{id}/comparison/export/csv", middleware.RequirePermission("rfq:compare")(
		http.HandlerFunc(handlers.ExportComparisonToCSV))).Methods("GET")

	// Quotes
	api.Handle("/quotes/{id}", middleware.RequirePermission("quote:read")(
		http.HandlerFunc(handlers.GetQuote))).Methods("GET")

	api.Handle("/quotes/{id}/withdraw", middleware.RequirePermission("quote:update")(
		http.HandlerFunc(handlers.WithdrawQuote))).Methods("POST")

	api.Handle("/quotes/{id}/approve", middleware.RequirePermission("quote:approve")(
		http.HandlerFunc(handlers.ApproveQuote))).Methods("POST")

	// Purchase orders
	api.Handle("/quotes/{quoteId}/purchase-order", middleware.RequirePermission("po:create")(
		http.HandlerFunc(handlers.CreatePurchaseOrder))).Methods("POST")

	api.Handle("/purchase-orders", middleware.RequirePermission("po:read")(
		http.HandlerFunc(handlers.GetPurchaseOrders))).Methods("GET")

	api.Handle("/purchase-orders/{id}", middleware.RequirePermission("po:read")(
		http.HandlerFunc(handlers.GetPurchaseOrder))).Methods("GET")

	api.Handle("/purchase-orders/{id}/status", middleware.RequirePermission("po:update")(
		http.HandlerFunc(handlers.UpdatePurchaseOrderStatus))).Methods("PUT")

	api.Handle("/purchase-orders/{id}/pdf", middleware.RequirePermission("po:read")(
		http.HandlerFunc(handlers.DownloadPurchaseOrderPDF))).Methods("GET")

	// Vendors
	api.Handle("/vendors", middleware.RequirePermission("vendor:create")(
		http.HandlerFunc(handlers.CreateVendor))).Methods("POST")

	api.Handle("/vendors", middleware.RequirePermission("vendor:read")(
		http.HandlerFunc(handlers.GetVendors))).Methods("GET")

	api.Handle("/vendors/{id}", middleware.RequirePermission("vendor:read")(
		http.HandlerFunc(handlers.GetVendor))).Methods("GET")

	api.Handle("/vendors/{id}", middleware.RequirePermission("vendor:update")(
		http.HandlerFunc(handlers.UpdateVendor))).Methods("PUT")

	api.Handle("/vendors/{id}/status", middleware.RequirePermission("vendor:update")(
		http.HandlerFunc(handlers.UpdateVendorStatus))).Methods("PUT")

	api.Handle("/vendors/{id}", middleware.RequirePermission("vendor:delete")(
		http.HandlerFunc(handlers.DeleteVendor))).Methods("DELETE")

	api.Handle("/vendors/{id}/service-areas", middleware.RequirePermission("vendor:update")(
		http.HandlerFunc(handlers.AddVendorServiceArea))).Methods("POST")

	api.Handle("/vendors/{id}/service-areas/{areaId}", middleware.RequirePermission("vendor:update")(
		http.HandlerFunc(handlers.DeleteVendorServiceArea))).Methods("DELETE")

	api.Handle("/vendors/{id}/port-capabilities", middleware.RequirePermission("vendor:update")(
		http.HandlerFunc(handlers.AddVendorPortCapability))).Methods("POST")

	api.Handle("/vendors/{id}/port-capabilities/{capId}", middleware.RequirePermission("vendor:update")(
		http.HandlerFunc(handlers.DeleteVendorPortCapability))).Methods("DELETE")

	// Audit trail and dashboards
	api.Handle("/audit-logs", middleware.RequirePermission("audit:read")(
		http.HandlerFunc(handlers.GetAuditLogs))).Methods("GET")

	api.Handle("/audit-logs/{entityType}/{entityId}", middleware.RequirePermission("audit:read")(
		http.HandlerFunc(handlers.GetEntityAuditTrail))).Methods("GET")

	api.Handle("/dashboard/procurement", middleware.RequirePermission("dashboard:read")(
		http.HandlerFunc(handlers.GetProcurementDashboard))).Methods("GET")

	api.Handle("/dashboard/compliance", middleware.RequirePermission("dashboard:read")(
		http.HandlerFunc(handlers.GetComplianceDashboard))).Methods("GET")
}
