package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the user ID from the JWT and stores it in
// the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// ModeratorOnlyMiddleware ensures the requester holds the moderator or admin
// role. It runs after token verification, so reaching it means the caller is
// authenticated.
func ModeratorOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	role := claims.Role
	if role != "moderator" && role != "admin" {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"success": false, "message": "Not authorized as moderator"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester holds the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"success": false, "message": "Not authorized as admin"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}
