package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// resetMonth снимает страховочную копию месяца и удаляет расписание
func (h *Handler) resetMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	snapshot, err := h.backups.Reset(c.Context(), c.Params("branch"), year, month)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"backupId": snapshot.ID,
	})
}

func (h *Handler) listBackups(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	backups, err := h.backups.ListBackups(c.Context(), c.Params("branch"), year, month)
	if err != nil {
		return h.respondError(c, err)
	}
	items := make([]fiber.Map, 0, len(backups))
	for _, b := range backups {
		items = append(items, fiber.Map{
			"id":        b.ID,
			"createdAt": b.CreatedAt,
			"dayCount":  len(b.Days),
		})
	}
	return c.JSON(fiber.Map{"backups": items})
}

// restoreMonth возвращает месяц к состоянию из страховочной копии
func (h *Handler) restoreMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c)
	if err != nil {
		return err
	}
	backupID, err := uuid.Parse(c.Params("backupId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid backup id")
	}
	if err := h.backups.Restore(c.Context(), c.Params("branch"), year, month, backupID); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
