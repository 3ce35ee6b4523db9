package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobhive/jobhive/internal/models"
	"gorm.io/gorm"
)

// userKey is the gin context key holding the authenticated *models.User.
const userKey = "currentUser"

// CurrentUser returns the user the request authenticated as, or nil for
// anonymous requests on routes using OptionalAuthenticate.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// Middleware resolves bearer tokens against the users table.
type Middleware struct {
	DB     *gorm.DB
	Tokens *TokenIssuer
}

func NewMiddleware(db *gorm.DB, tokens *TokenIssuer) *Middleware {
	return &Middleware{DB: db, Tokens: tokens}
}

func (m *Middleware) resolve(c *gin.Context) (*models.User, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, errors.New("no token, authorization denied")
	}
	token := strings.TrimPrefix(header, "Bearer ")

	id, _, err := m.Tokens.Verify(token)
	if err != nil {
		return nil, errors.New("token is not valid")
	}

	var user models.User
	if err := m.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, errors.New("user not found")
	}
	if !user.Active() {
		return nil, errors.New("user account is inactive")
	}
	return &user, nil
}

// Authenticate rejects the request unless it carries a valid token for
// an active account.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuthenticate resolves the caller if a valid token is present
// but lets anonymous requests through. Used where visibility depends on
// who is asking.
func (m *Middleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := m.resolve(c); err == nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// RequireRoles gates a route on the caller's role. Must run after
// Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to access this route",
			})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "User role " + user.Role + " is not authorized to access this route",
		})
	}
}
