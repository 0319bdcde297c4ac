package utils

import (
	"math"

	"github.com/kataras/iris/v12"
)

// JSONError renders the failure envelope: {success:false, message}.
func JSONError(ctx iris.Context, status int, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"success": false, "message": message})
}

// JSONServerError renders a 500 with the underlying message attached for
// diagnostics, never swallowed.
func JSONServerError(ctx iris.Context, err error) {
	ctx.StatusCode(iris.StatusInternalServerError)
	ctx.JSON(iris.Map{"success": false, "message": "Server error", "error": err.Error()})
}

// TotalPages computes the page count for a pre-pagination total.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
