package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginPayload defines the expected JSON structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Fixed session token. Good enough for an internal QA dashboard behind a
// trusted network; swap for real sessions before exposing this anywhere.
const sessionToken = "QA_GATE_SESSION_TOKEN"
const sessionCookieName = "admin_session_token"

// LoginHandler handles admin login requests. It checks credentials against
// the environment-configured values and sets the session cookie on success.
func LoginHandler(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if adminUsername == "" || adminPassword == "" {
		// Server started without credentials; this is a configuration issue.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin credentials not configured on server"})
		return
	}

	if payload.Username == adminUsername && payload.Password == adminPassword {
		// HttpOnly cookie, 1 hour lifetime. Secure=false for local dev
		// without HTTPS.
		c.SetCookie(sessionCookieName, sessionToken, 3600, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   sessionToken,
		})
		return
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
}

// LogoutHandler clears the session cookie.
func LogoutHandler(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
