package routes

import (
	"encoding/json"
	"strings"

	"marketplace-server/models"
	"marketplace-server/storage"
	"marketplace-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.JSONServerError(ctx, userExistsErr)
		return
	}

	if userExists {
		utils.JSONError(ctx, iris.StatusConflict, "Email already registered")
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.JSONServerError(ctx, hashErr)
		return
	}

	newUser = models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Email:     strings.ToLower(userInput.Email),
		Password:  hashedPassword,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.JSONServerError(ctx, err)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.JSONServerError(ctx, userExistsErr)
		return
	}

	if !userExists {
		utils.JSONError(ctx, iris.StatusUnauthorized, errorMsg)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.JSONError(ctx, iris.StatusUnauthorized, errorMsg)
		return
	}

	returnUser(existingUser, ctx)
}

// PATCH /api/user/pushtoken registers or removes a device push token.
func AlterPushToken(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.JSONError(ctx, iris.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input AlterPushTokenInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "User not found")
		return
	}

	var tokens []string
	if user.PushTokens != nil {
		json.Unmarshal(user.PushTokens, &tokens)
	}

	if input.Op == "add" && !slices.Contains(tokens, input.Token) {
		tokens = append(tokens, input.Token)
	} else if input.Op == "remove" {
		if idx := slices.Index(tokens, input.Token); idx >= 0 {
			tokens = slices.Delete(tokens, idx, idx+1)
		}
	}

	encoded, err := json.Marshal(tokens)
	if err != nil {
		utils.JSONServerError(ctx, err)
		return
	}
	user.PushTokens = encoded
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// PATCH /api/user/settings/notifications
func AllowsNotifications(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.JSONError(ctx, iris.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input AllowsNotificationsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "User not found")
		return
	}

	user.AllowsNotifications = input.AllowsNotifications
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.JSONServerError(ctx, tokenErr)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"status":       user.Status,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlterPushTokenInput struct {
	Token string `json:"token" validate:"required"`
	Op    string `json:"op" validate:"required,oneof=add remove"`
}

type AllowsNotificationsInput struct {
	AllowsNotifications *bool `json:"allowsNotifications" validate:"required"`
}
