package handlers

import (
	"github.com/gofiber/fiber/v2"

	"inventory-pos/models"
)

// PortalIndex answers the guarded portal entry routes. Page rendering is
// handled by the frontend; this endpoint exists so the page guard has a
// route to protect and the frontend can bootstrap itself.
func PortalIndex(c *fiber.Ctx) error {
	portal, _ := c.Locals("portal").(string)

	var permissions []string
	if perms, ok := models.GetPortalPermissions()[models.Portal(portal)]; ok {
		permissions = perms.Permissions
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"portal":      portal,
		"username":    c.Locals("username"),
		"role":        c.Locals("role"),
		"permissions": permissions,
	})
}
