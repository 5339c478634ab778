package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// UserInfo is the verified user identity attached to the request by the
// upstream auth gateway. ID zero means anonymous.
type UserInfo struct {
	ID int64
}

// Anonymous reports whether no verified identity accompanied the request.
func (u *UserInfo) Anonymous() bool {
	return u.ID == 0
}

// Identity reads the X-User-ID header the auth gateway sets after verifying
// the caller and stores it in the request context. Authentication itself
// happens upstream; a missing or malformed header simply yields an
// anonymous identity.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userInfo := &UserInfo{}
			if raw := r.Header.Get("X-User-ID"); raw != "" {
				if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
					userInfo.ID = id
				}
			}
			ctx := context.WithValue(r.Context(), userContextKey, userInfo)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{}
}
