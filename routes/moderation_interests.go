package routes

import (
	"fmt"

	"marketplace-server/services"
	"marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/moderation/interests?status=&page=&limit=
func ListInterestsForModeration(ctx iris.Context) {
	page, limit := queuePagination(ctx)
	status := ctx.URLParamDefault("status", "pending")

	queue := services.NewModerationQueueService()
	interests, total, err := queue.ListInterests(status, page, limit)
	if err != nil {
		respondModerationError(ctx, "ListInterestsForModeration", err)
		return
	}

	ctx.JSON(iris.Map{
		"success":        true,
		"data":           interests,
		"page":           page,
		"totalPages":     utils.TotalPages(total, limit),
		"totalInterests": total,
	})
}

type ApproveRejectInterestInput struct {
	InterestID uint   `json:"interestId" validate:"required"`
	Action     string `json:"action" validate:"required"`
}

// POST /api/moderation/interests/approve-reject
func ApproveRejectInterest(ctx iris.Context) {
	var input ApproveRejectInterestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	moderation := services.NewModerationService()
	if err := moderation.Transition("interest", input.InterestID, input.Action); err != nil {
		respondModerationError(ctx, "ApproveRejectInterest", err)
		return
	}

	utils.Audit(ctx, "moderation.interest."+input.Action, "interest", input.InterestID, nil)
	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("Interest %s successfully", outcomeWord(input.Action)),
	})
}

type BulkApproveRejectInterestsInput struct {
	InterestIDs []uint `json:"interestIds" validate:"required,min=1"`
	Action      string `json:"action" validate:"required"`
}

// POST /api/moderation/interests/bulk-approve-reject
func BulkApproveRejectInterests(ctx iris.Context) {
	var input BulkApproveRejectInterestsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	moderation := services.NewModerationService()
	results, err := moderation.BulkTransitionIDs("interest", input.InterestIDs, input.Action)
	if err != nil {
		respondModerationError(ctx, "BulkApproveRejectInterests", err)
		return
	}

	utils.Audit(ctx, "moderation.interest.bulk_"+input.Action, "interest", 0, results)
	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("Bulk %s completed", input.Action),
		"results": results,
	})
}
