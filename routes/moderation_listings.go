package routes

import (
	"fmt"

	"marketplace-server/services"
	"marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/moderation/listings?type=&status=&page=&limit=
func ListListingsForModeration(ctx iris.Context) {
	page, limit := queuePagination(ctx)
	listingType := ctx.URLParamDefault("type", "all")
	status := ctx.URLParamDefault("status", "pending")

	queue := services.NewModerationQueueService()
	listings, total, err := queue.ListListings(listingType, status, page, limit)
	if err != nil {
		respondModerationError(ctx, "ListListingsForModeration", err)
		return
	}

	ctx.JSON(iris.Map{
		"success":       true,
		"data":          listings,
		"page":          page,
		"totalPages":    utils.TotalPages(total, limit),
		"totalListings": total,
	})
}

type ApproveRejectListingInput struct {
	ListingID   uint   `json:"listingId" validate:"required"`
	ListingType string `json:"listingType" validate:"required"`
	Action      string `json:"action" validate:"required"`
}

// POST /api/moderation/listings/approve-reject
func ApproveRejectListing(ctx iris.Context) {
	var input ApproveRejectListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	moderation := services.NewModerationService()
	if err := moderation.Transition(input.ListingType, input.ListingID, input.Action); err != nil {
		respondModerationError(ctx, "ApproveRejectListing", err)
		return
	}

	utils.Audit(ctx, "moderation.listing."+input.Action, input.ListingType, input.ListingID, nil)
	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("Listing %s successfully", outcomeWord(input.Action)),
	})
}

type BulkListingItemInput struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
}

type BulkApproveRejectListingsInput struct {
	ListingIDs []BulkListingItemInput `json:"listingIds" validate:"required,min=1"`
	Action     string                 `json:"action" validate:"required"`
}

// POST /api/moderation/listings/bulk-approve-reject
func BulkApproveRejectListings(ctx iris.Context) {
	var input BulkApproveRejectListingsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	items := make([]services.BulkItem, len(input.ListingIDs))
	for i, item := range input.ListingIDs {
		items[i] = services.BulkItem{ID: item.ID, Kind: item.Type}
	}

	moderation := services.NewModerationService()
	results, err := moderation.BulkTransition(items, input.Action)
	if err != nil {
		respondModerationError(ctx, "BulkApproveRejectListings", err)
		return
	}

	utils.Audit(ctx, "moderation.listing.bulk_"+input.Action, "listing", 0, results)
	ctx.JSON(iris.Map{
		"success": true,
		"message": fmt.Sprintf("Bulk %s completed", input.Action),
		"results": results,
	})
}
