package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"shipproc/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260115_create_rbac_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Permission{}, &models.Role{}, &models.RolePermission{}, &models.User{})
			},
		},
		{
			ID: "20260115_create_vendor_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Vendor{}, &models.VendorServiceArea{}, &models.VendorPortCapability{})
			},
		},
		{
			ID: "20260116_create_procurement_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Requisition{}, &models.RequisitionLineItem{},
					&models.RFQ{}, &models.Quote{}, &models.QuoteLineItem{},
					&models.PurchaseOrder{}, &models.PurchaseOrderLineItem{})
			},
		},
		{
			ID: "20260120_create_compliance_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ComplianceReport{}, &models.ComplianceFinding{})
			},
		},
		{
			ID: "20260120_create_document_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.DocumentCategory{}, &models.Document{}, &models.DocumentVersion{})
			},
		},
		{
			ID: "20260121_create_audit_and_notification_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AuditLog{}, &models.Notification{})
			},
		},
		{
			ID: "20260214_add_quote_score_columns",
			Migrate: func(tx *gorm.DB) error {
				// score fields arrived after the initial quote table
				return tx.AutoMigrate(&models.Quote{})
			},
		},
	})
	return m.Migrate()
}
