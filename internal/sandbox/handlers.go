package sandbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return Error(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	return Success(c, fiber.StatusOK, api.CurrentUser{User: user.ToAPI()}, "")
}

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

func (h *AdminHandler) ListAll(c *fiber.Ctx) error {
	var rows []User
	if err := h.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		logger.Error("admin_users_list_failed", err, nil)
		return Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	users := make([]api.User, len(rows))
	for i, row := range rows {
		users[i] = row.ToAPI()
	}
	return Success(c, fiber.StatusOK, api.UserList{Users: users}, "")
}

func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	var req api.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	role := roles.Role(strings.TrimSpace(string(req.Role)))
	if role == "" {
		return FieldError(c, "role", "Role is required")
	}
	if !role.Known() {
		return FieldError(c, "role", fmt.Sprintf("Invalid role: %s", role))
	}

	user, err := h.update(c, func(u *User) {
		u.Role = role
	})
	if err != nil {
		return h.updateError(c, err, "Failed to update role")
	}

	logger.InfoWithUser(GetCurrentUser(c).ID, "admin_role_updated", map[string]interface{}{
		"target_user_id": user.ID,
		"role":           string(role),
	})
	return Success(c, fiber.StatusOK, fiber.Map{"user": user.ToAPI()}, "User role updated successfully")
}

func (h *AdminHandler) UpdateSecondaryRoles(c *fiber.Ctx) error {
	var req api.UpdateSecondaryRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SecondaryRoles == nil {
		return FieldError(c, "secondaryRoles", "secondaryRoles must be an array")
	}

	set := roles.NewSet()
	for _, r := range req.SecondaryRoles {
		if !r.IsSecondaryOption() {
			return FieldError(c, "secondaryRoles", fmt.Sprintf("Invalid secondary role: %s", r))
		}
		set.Add(r)
	}

	user, err := h.update(c, func(u *User) {
		u.SecondaryRoles = RoleList(set.Slice())
	})
	if err != nil {
		return h.updateError(c, err, "Failed to update secondary roles")
	}

	logger.InfoWithUser(GetCurrentUser(c).ID, "admin_secondary_roles_updated", map[string]interface{}{
		"target_user_id":  user.ID,
		"secondary_roles": set.Slice(),
	})
	return Success(c, fiber.StatusOK, fiber.Map{"user": user.ToAPI()}, "Secondary roles updated successfully")
}

// update loads the target user, applies fn, recomputes capabilities and
// saves, all inside one transaction.
func (h *AdminHandler) update(c *fiber.Ctx, fn func(u *User)) (*User, error) {
	id := c.Params("id")
	var user User
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		fn(&user)
		user.RoleCapabilities = capabilitiesFor(user.Role, user.SecondaryRoles)
		return tx.Model(&user).Select("role", "secondary_roles", "role_capabilities", "updated_at").Updates(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *AdminHandler) updateError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, "User not found")
	}
	logger.Error("admin_user_update_failed", err, map[string]interface{}{"target_user_id": c.Params("id")})
	return Error(c, fiber.StatusInternalServerError, message)
}
