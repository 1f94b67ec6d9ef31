package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/platform/ctxutil"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

// requestIdentity rebuilds the caller's identity from request data. The
// internal id wins when the auth middleware resolved one; otherwise the
// provider UUID is passed through so guest-tolerant endpoints can still
// attempt their own lookup.
func requestIdentity(c *gin.Context) (services.Identity, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return services.Identity{}, false
	}
	if rd.UserID != 0 {
		return services.Identity{Kind: services.IdentityInternalID, InternalID: rd.UserID}, true
	}
	return services.Identity{Kind: services.IdentityExternalUUID, AuthUUID: rd.AuthUUID}, true
}
