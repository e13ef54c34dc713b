package config

import (
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"shipproc/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/3] Seeding Permissions and Roles...")
	SeedPermissions()

	log.Println("[2/3] Seeding Document Categories...")
	SeedDocumentCategories()

	log.Println("[3/3] Seeding Default Users...")
	SeedUsers()

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// SeedPermissions creates default permissions and roles
func SeedPermissions() {
	permissions := []models.Permission{
		// Super Admin Wildcard
		{ID: uuid.New(), Name: "*:*:*", Resource: "*", Action: "*", Description: "Super admin wildcard - all permissions"},

		// Requisitions
		{ID: uuid.New(), Name: "requisition:create", Resource: "requisition", Action: "create", Description: "Raise requisition"},
		{ID: uuid.New(), Name: "requisition:read", Resource: "requisition", Action: "read", Description: "View requisitions"},
		{ID: uuid.New(), Name: "requisition:update", Resource: "requisition", Action: "update", Description: "Edit requisition"},
		{ID: uuid.New(), Name: "requisition:approve", Resource: "requisition", Action: "approve", Description: "Approve requisition"},
		{ID: uuid.New(), Name: "requisition:convert", Resource: "requisition", Action: "convert", Description: "Convert requisition to RFQ"},

		// RFQs
		{ID: uuid.New(), Name: "rfq:create", Resource: "rfq", Action: "create", Description: "Create RFQ"},
		{ID: uuid.New(), Name: "rfq:read", Resource: "rfq", Action: "read", Description: "View RFQs"},
		{ID: uuid.New(), Name: "rfq:update", Resource: "rfq", Action: "update", Description: "Edit RFQ"},
		{ID: uuid.New(), Name: "rfq:compare", Resource: "rfq", Action: "compare", Description: "Run quote comparison"},

		// Quotes
		{ID: uuid.New(), Name: "quote:create", Resource: "quote", Action: "create", Description: "Record vendor quote"},
		{ID: uuid.New(), Name: "quote:read", Resource: "quote", Action: "read", Description: "View quotes"},
		{ID: uuid.New(), Name: "quote:update", Resource: "quote", Action: "update", Description: "Edit quote"},
		{ID: uuid.New(), Name: "quote:approve", Resource: "quote", Action: "approve", Description: "Approve quote and award RFQ"},

		// Vendors
		{ID: uuid.New(), Name: "vendor:create", Resource: "vendor", Action: "create", Description: "Add vendor"},
		{ID: uuid.New(), Name: "vendor:read", Resource: "vendor", Action: "read", Description: "View vendor master"},
		{ID: uuid.New(), Name: "vendor:update", Resource: "vendor", Action: "update", Description: "Edit vendor"},
		{ID: uuid.New(), Name: "vendor:delete", Resource: "vendor", Action: "delete", Description: "Remove vendor"},

		// Purchase orders
		{ID: uuid.New(), Name: "po:create", Resource: "po", Action: "create", Description: "Issue purchase order"},
		{ID: uuid.New(), Name: "po:read", Resource: "po", Action: "read", Description: "View purchase orders"},
		{ID: uuid.New(), Name: "po:update", Resource: "po", Action: "update", Description: "Update purchase order status"},

		// Compliance
		{ID: uuid.New(), Name: "compliance:create", Resource: "compliance", Action: "create", Description: "File compliance report"},
		{ID: uuid.New(), Name: "compliance:read", Resource: "compliance", Action: "read", Description: "View compliance reports"},
		{ID: uuid.New(), Name: "compliance:update", Resource: "compliance", Action: "update", Description: "Edit compliance report"},
		{ID: uuid.New(), Name: "compliance:export", Resource: "compliance", Action: "export", Description: "Export compliance reports"},

		// Documents
		{ID: uuid.New(), Name: "documents:create", Resource: "documents", Action: "create", Description: "Upload document"},
		{ID: uuid.New(), Name: "documents:read", Resource: "documents", Action: "read", Description: "View documents"},
		{ID: uuid.New(), Name: "documents:update", Resource: "documents", Action: "update", Description: "Edit document / new version"},
		{ID: uuid.New(), Name: "documents:delete", Resource: "documents", Action: "delete", Description: "Delete document"},

		// Audit & dashboard
		{ID: uuid.New(), Name: "audit:read", Resource: "audit", Action: "read", Description: "View audit trail"},
		{ID: uuid.New(), Name: "dashboard:read", Resource: "dashboard", Action: "read", Description: "View dashboards"},

		// User administration
		{ID: uuid.New(), Name: "user:manage", Resource: "user", Action: "manage", Description: "Manage user accounts and roles"},
	}

	for _, p := range permissions {
		var existing models.Permission
		if err := DB.Where("name = ?", p.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := DB.Create(&p).Error; err != nil {
				log.Printf("failed to seed permission %s: %v", p.Name, err)
			}
		}
	}

	roles := []struct {
		Name        string
		Description string
		Level       int
		Perms       []string
	}{
		{"super_admin", "Full system access", 0, []string{"*:*:*"}},
		{"fleet_manager", "Approves quotes, issues POs, full procurement visibility", 1, []string{
			"requisition:read", "requisition:approve", "requisition:convert",
			"rfq:create", "rfq:read", "rfq:update", "rfq:compare",
			"quote:read", "quote:approve",
			"vendor:read", "po:create", "po:read", "po:update",
			"compliance:read", "compliance:export",
			"documents:read", "documents:create", "documents:update",
			"audit:read", "dashboard:read",
		}},
		{"purchaser", "Runs the day-to-day quoting cycle", 2, []string{
			"requisition:create", "requisition:read", "requisition:update",
			"rfq:create", "rfq:read", "rfq:update", "rfq:compare",
			"quote:create", "quote:read", "quote:update",
			"vendor:create", "vendor:read", "vendor:update",
			"po:read", "documents:read", "documents:create", "dashboard:read",
		}},
		{"compliance_officer", "Maintains SOLAS/ISM/MARPOL reporting", 2, []string{
			"compliance:create", "compliance:read", "compliance:update", "compliance:export",
			"documents:read", "documents:create", "documents:update",
			"audit:read", "dashboard:read",
		}},
		{"vessel_crew", "Raises requisitions from on board", 4, []string{
			"requisition:create", "requisition:read", "documents:read",
		}},
	}

	for _, r := range roles {
		var role models.Role
		err := DB.Where("name = ?", r.Name).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			role = models.Role{Name: r.Name, Description: r.Description, Level: r.Level, IsActive: true}
			if err := DB.Create(&role).Error; err != nil {
				log.Printf("failed to seed role %s: %v", r.Name, err)
				continue
			}
		} else if err != nil {
			log.Printf("failed to look up role %s: %v", r.Name, err)
			continue
		}

		var perms []models.Permission
		if err := DB.Where("name IN ?", r.Perms).Find(&perms).Error; err != nil {
			log.Printf("failed to load permissions for role %s: %v", r.Name, err)
			continue
		}
		if err := DB.Model(&role).Association("Permissions").Replace(perms); err != nil {
			log.Printf("failed to attach permissions to role %s: %v", r.Name, err)
		}
	}
}

// SeedDocumentCategories creates the default document categories
func SeedDocumentCategories() {
	categories := []models.DocumentCategory{
		{Name: "Vessel Certificates", Description: "Class, flag and statutory certificates"},
		{Name: "Vendor Paperwork", Description: "Vendor registrations, insurance, quality certificates"},
		{Name: "Quotes & Invoices", Description: "Commercial documents attached to RFQs and POs"},
		{Name: "Compliance Reports", Description: "SOLAS, ISM and MARPOL submissions"},
		{Name: "Survey Reports", Description: "Class and condition survey reports"},
	}
	for _, c := range categories {
		var existing models.DocumentCategory
		if err := DB.Where("name = ?", c.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			c.IsActive = true
			if err := DB.Create(&c).Error; err != nil {
				log.Printf("failed to seed document category %s: %v", c.Name, err)
			}
		}
	}
}

// SeedUsers creates the initial admin account when none exists.
// Password comes from ADMIN_PASSWORD; seeding is skipped without it.
func SeedUsers() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin user seeding")
		return
	}

	var adminRole models.Role
	if err := DB.Where("name = ?", "super_admin").First(&adminRole).Error; err != nil {
		log.Printf("super_admin role not found, skipping admin user seeding: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        Getenv("ADMIN_EMAIL", "admin@example.com"),
		Phone:        Getenv("ADMIN_PHONE", "0000000000"),
		PasswordHash: string(hash),
		RoleID:       &adminRole.ID,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
		return
	}
	log.Printf("seeded admin user %s", admin.Email)
}
