package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/constants"
)

// UserMiddleware 從X-User-ID取得使用者身分
// 身分驗證由上游authcenter處理，這裡只信任gateway轉發的header
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			api.ErrorJSON(w, http.StatusUnauthorized, "missing user identity")
			return
		}

		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil || userID == 0 {
			api.ErrorJSON(w, http.StatusUnauthorized, "invalid user identity")
			return
		}

		ctx := context.WithValue(r.Context(), constants.UserIDKey, uint(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID 從context取得使用者ID，沒有時回傳0
func GetUserID(ctx context.Context) uint {
	if v := ctx.Value(constants.UserIDKey); v != nil {
		return v.(uint)
	}
	return 0
}
