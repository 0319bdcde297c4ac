package routes

import (
	"fmt"

	"marketplace-server/services"
	"marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/moderation/users?status=&page=&limit=
func ListUsersForModeration(ctx iris.Context) {
	page, limit := queuePagination(ctx)
	status := ctx.URLParamDefault("status", "pending")

	queue := services.NewModerationQueueService()
	users, total, err := queue.ListUsers(status, page, limit)
	if err != nil {
		respondModerationError(ctx, "ListUsersForModeration", err)
		return
	}

	ctx.JSON(iris.Map{
		"success":    true,
		"data":       users,
		"page":       page,
		"totalPages": utils.TotalPages(total, limit),
		"totalUsers": total,
	})
}

type ApproveRejectUserInput struct {
	UserID uint   `json:"userId" validate:"required"`
	Action string `json:"action" validate:"required"`
}

// POST /api/moderation/users/approve-reject
func ApproveRejectUser(ctx iris.Context) {
	var input ApproveRejectUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	moderation := services.NewModerationService()
	if err := moderation.Transition("user", input.UserID, input.Action); err != nil {
		respondModerationError(ctx, "ApproveRejectUser", err)
		return
	}

	utils.Audit(ctx, "moderation.user."+input.Action, "user", input.UserID, nil)
	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("User %s successfully", outcomeWord(input.Action)),
	})
}

type BulkApproveRejectUsersInput struct {
	UserIDs []uint `json:"userIds" validate:"required,min=1"`
	Action  string `json:"action" validate:"required"`
}

// POST /api/moderation/users/bulk-approve-reject
func BulkApproveRejectUsers(ctx iris.Context) {
	var input BulkApproveRejectUsersInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	moderation := services.NewModerationService()
	results, err := moderation.BulkTransitionIDs("user", input.UserIDs, input.Action)
	if err != nil {
		respondModerationError(ctx, "BulkApproveRejectUsers", err)
		return
	}

	utils.Audit(ctx, "moderation.user.bulk_"+input.Action, "user", 0, results)
	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("Bulk %s completed", input.Action),
		"results": results,
	})
}
