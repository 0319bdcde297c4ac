package utils

import (
	"encoding/json"
	"net"

	"marketplace-server/models"
	"marketplace-server/storage"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// Audit records one moderation action with the acting moderator and request
// origin. Failures are ignored: the audit trail never blocks the action.
func Audit(ctx iris.Context, action, resourceType string, resourceID uint, detail interface{}) {
	var detailStr string
	if detail != nil {
		if d, err := json.Marshal(detail); err == nil {
			detailStr = string(d)
		}
	}
	var moderatorID uint
	if tok := jsonWT.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			moderatorID = at.ID
		}
	}
	entry := models.AuditLog{
		ModeratorUserID: moderatorID,
		Action:          action,
		ResourceType:    resourceType,
		ResourceID:      resourceID,
		DetailJSON:      detailStr,
		IPAddress:       clientIP(ctx),
	}
	storage.DB.Create(&entry)
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
