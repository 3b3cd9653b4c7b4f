package middleware

import (
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only. DO NOT use in production.
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// parseToken validates the JWT from cookie or Authorization header and
// returns its claims.
func parseToken(c *gin.Context) (jwt.MapClaims, bool) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return nil, false
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return nil, false
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return nil, false
	}
	return claims, true
}

// RequireAuth validates the JWT and sets userID, storeID, and userRole on
// the context. Every tenant-scoped query downstream keys off storeID.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c)
		if !ok {
			return
		}

		storeID, ok := claims["store_id"].(string)
		if !ok || storeID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Store not found in token"))
			return
		}

		c.Set("userID", claims["sub"])
		c.Set("storeID", storeID)
		c.Set("userRole", claims["role"])
		c.Next()
	}
}

// RequireRole validates the JWT and checks that the user's role is in the
// allowed list.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c)
		if !ok {
			return
		}

		userRole, ok := claims["role"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}

		roleAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		storeID, _ := claims["store_id"].(string)
		c.Set("userID", claims["sub"])
		c.Set("storeID", storeID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// --- Subscription gate ---

// subCacheEntry stores a cached subscription status with TTL so the gate
// does not hit the database on every request.
type subCacheEntry struct {
	status    string
	expiresAt time.Time
}

var (
	subCache    sync.Map // storeID -> subCacheEntry
	subCacheTTL = 5 * time.Minute
)

// subDB holds the database reference for subscription lookups, set via
// InitSubscriptionMiddleware.
var subDB *gorm.DB

// InitSubscriptionMiddleware sets the DB reference for RequireActiveSubscription.
func InitSubscriptionMiddleware(db *gorm.DB) {
	subDB = db
}

// RequireActiveSubscription blocks stores whose subscription is canceled or
// past due. Must run after RequireAuth/RequireRole.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.GetString("storeID")
		if storeID == "" || subDB == nil {
			c.Next()
			return
		}

		status, ok := cachedSubscriptionStatus(storeID)
		if !ok {
			var store model.Store
			if err := subDB.Select("subscription_status").First(&store, "id = ?", storeID).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Store not found"))
				return
			}
			status = store.SubscriptionStatus
			subCache.Store(storeID, subCacheEntry{status: status, expiresAt: time.Now().Add(subCacheTTL)})
		}

		if status == model.SubscriptionCanceled || status == model.SubscriptionPastDue {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, response.Error(http.StatusPaymentRequired, "Subscription inactive: please update your billing information"))
			return
		}
		c.Next()
	}
}

// InvalidateSubscriptionCache drops the cached status after a webhook
// changes it.
func InvalidateSubscriptionCache(storeID string) {
	subCache.Delete(storeID)
}

func cachedSubscriptionStatus(storeID string) (string, bool) {
	val, ok := subCache.Load(storeID)
	if !ok {
		return "", false
	}
	entry, ok := val.(subCacheEntry)
	if !ok || time.Now().After(entry.expiresAt) {
		subCache.Delete(storeID)
		return "", false
	}
	return entry.status, true
}
