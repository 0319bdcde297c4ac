package routes

import (
	"errors"
	"log"
	"net/http"

	"marketplace-server/services"
	"marketplace-server/utils"

	"github.com/kataras/iris/v12"
)

// respondModerationError maps the service error taxonomy onto the response
// envelope, logging the operation context first.
func respondModerationError(ctx iris.Context, operation string, err error) {
	log.Printf("Error in %s: %v", operation, err)

	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(ctx, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		utils.JSONError(ctx, http.StatusNotFound, notFoundErr.Message)
	default:
		utils.JSONServerError(ctx, err)
	}
}

func outcomeWord(action string) string {
	if action == "approve" {
		return "approved"
	}
	return "rejected"
}

// queuePagination reads page/limit with defensive defaults: malformed or
// out-of-range values fall back to page 1, limit 10.
func queuePagination(ctx iris.Context) (page, limit int) {
	page = ctx.URLParamIntDefault("page", 1)
	limit = ctx.URLParamIntDefault("limit", 10)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
