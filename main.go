package main

import (
	"os"

	"marketplace-server/routes"
	"marketplace-server/storage"
	"marketplace-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Patch("/pushtoken", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.AlterPushToken)
		user.Patch("/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.AllowsNotifications)
	}

	moderation := app.Party("/api/moderation", accessTokenVerifierMiddleware, utils.ModeratorOnlyMiddleware)
	{
		moderation.Get("/listings", routes.ListListingsForModeration)
		moderation.Post("/listings/approve-reject", routes.ApproveRejectListing)
		moderation.Post("/listings/bulk-approve-reject", routes.BulkApproveRejectListings)
		moderation.Get("/users", routes.ListUsersForModeration)
		moderation.Post("/users/approve-reject", routes.ApproveRejectUser)
		moderation.Post("/users/bulk-approve-reject", routes.BulkApproveRejectUsers)
		moderation.Get("/interests", routes.ListInterestsForModeration)
		moderation.Post("/interests/approve-reject", routes.ApproveRejectInterest)
		moderation.Post("/interests/bulk-approve-reject", routes.BulkApproveRejectInterests)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", routes.ListNotifications)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	app.Listen(":" + port)
}
