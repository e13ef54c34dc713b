// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

var validate = validator.New()

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Rank     string `json:"rank"`
	Role     string `json:"role"`
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Rank:         req.Rank,
		IsActive:     true,
	}

	// self-registration defaults to vessel_crew; anything else is
	// assigned by an admin afterwards
	roleName := req.Role
	if roleName == "" || roleName == "super_admin" {
		roleName = "vessel_crew"
	}
	var role models.Role
	if err := config.DB.Where("name = ?", roleName).First(&role).Error; err == nil {
		u.RoleID = &role.ID
	}

	if err := config.DB.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "email or phone already registered", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Rank  string    `json:"rank"`
	Role  string    `json:"role"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var u models.User
	if err := config.DB.Preload("RoleModel").Where("email = ?", req.Email).First(&u).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !u.IsActive {
		http.Error(w, "account disabled", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	roleName := ""
	if u.RoleModel != nil {
		roleName = u.RoleModel.Name
	}
	token, err := middleware.GenerateToken(u.ID.String(), roleName, u.Name, u.Email)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}

	out := loginResp{
		Token: token,
		User: userPayload{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Phone: u.Phone,
			Rank:  u.Rank,
			Role:  roleName,
		},
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCurrentUser returns the authenticated user's profile with its
// role and effective permissions.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := config.DB.Preload("RoleModel.Permissions").First(&user, "id = ?", claims.UserID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"phone":       user.Phone,
		"rank":        user.Rank,
		"role":        claims.Role,
		"permissions": user.GetAllPermissions(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAllUsers lists active users for admin screens, paginated.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	var users []models.User
	if err := config.DB.
		Preload("RoleModel").
		Where("is_active = ?", true).
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var total int64
	if err := config.DB.
		Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]userPayload, len(users))
	for i, u := range users {
		roleName := ""
		if u.RoleModel != nil {
			roleName = u.RoleModel.Name
		}
		out[i] = userPayload{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Phone: u.Phone,
			Rank:  u.Rank,
			Role:  roleName,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  out,
	})
}

type assignRoleReq struct {
	RoleName string `json:"role_name" validate:"required"`
}

// AssignUserRole sets a user's role by role name (admin only).
func AssignUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var req assignRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var role models.Role
	if err := config.DB.Where("name = ?", req.RoleName).First(&role).Error; err != nil {
		http.Error(w, "role not found", http.StatusNotFound)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	user.RoleID = &role.ID
	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "user", user.ID, models.AuditActionUpdate, models.AuditDetails{
		"role": role.Name,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": user.ID, "role": role.Name})
}
