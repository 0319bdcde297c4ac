package routes

import (
	"marketplace-server/services"
	"marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/notifications?page=&limit=
func ListNotifications(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.JSONError(ctx, iris.StatusUnauthorized, "User ID not found in context")
		return
	}

	page, limit := queuePagination(ctx)

	notifications := services.NewNotificationService()
	records, total, unread, err := notifications.ListForRecipient(userID, page, limit)
	if err != nil {
		respondModerationError(ctx, "ListNotifications", err)
		return
	}

	ctx.JSON(iris.Map{
		"success":     true,
		"data":        records,
		"page":        page,
		"totalPages":  utils.TotalPages(total, limit),
		"total":       total,
		"unreadCount": unread,
	})
}

// PATCH /api/notifications/{id:uint}/read
func MarkNotificationRead(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.JSONError(ctx, iris.StatusUnauthorized, "User ID not found in context")
		return
	}

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "Invalid notification id")
		return
	}

	notifications := services.NewNotificationService()
	if err := notifications.MarkRead(userID, id); err != nil {
		respondModerationError(ctx, "MarkNotificationRead", err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Notification marked as read"})
}
