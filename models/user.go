// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"size:15;uniqueIndex;not null" json:"phone"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Rank         string     `gorm:"size:50" json:"rank"` // shipboard or office designation, informational
	RoleID       *uuid.UUID `gorm:"type:uuid" json:"role_id"`
	RoleModel    *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	return
}

// HasPermission checks if user has a specific permission
func (u *User) HasPermission(permissionName string) bool {
	if u.RoleModel != nil {
		return u.RoleModel.HasPermission(permissionName)
	}
	return false
}

// GetAllPermissions collects all permission names attached to the user's role
func (u *User) GetAllPermissions() []string {
	if u.RoleModel == nil {
		return nil
	}
	if u.RoleModel.Name == "super_admin" {
		return []string{"*:*:*"}
	}
	result := make([]string, 0, len(u.RoleModel.Permissions))
	for _, perm := range u.RoleModel.Permissions {
		result = append(result, perm.Name)
	}
	return result
}
