package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"restaurant-api/config"
	"restaurant-api/email"
	"restaurant-api/logger"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// Signup creates a customer account and sends a welcome email (best-effort).
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required")
		return
	}

	// Name and email are both identities, checked case-insensitively.
	var existing models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?) OR LOWER(name) = LOWER(?)", req.Email, req.Name).
		First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         models.RoleUser,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Error("signup failed", logger.Err(err))
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	email.SendAsync(user.Email, email.SubjectWelcome, email.WelcomeBody(user.Name))

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": userView(&user)})
}

// Login authenticates by name or email, case-insensitively.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?) OR LOWER(name) = LOWER(?)", req.Identifier, req.Identifier).
		First(&user).Error; err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": userView(&user)})
}

// CheckUsername reports availability of a username, case-insensitively.
func CheckUsername(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Username) < 3 {
		fail(c, http.StatusBadRequest, "Username must be at least 3 characters")
		return
	}

	var existing models.User
	taken := config.DB.Where("LOWER(name) = LOWER(?)", req.Username).First(&existing).Error == nil

	msg := "Username is available"
	if taken {
		msg = "Username is already taken"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "available": !taken, "message": msg})
}

// ForgotPassword issues a 6-digit reset code valid for one hour. The response
// is identical whether or not the account exists.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "If email exists, reset code sent."})
		return
	}

	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
	expiry := time.Now().Add(time.Hour)
	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"reset_code":   code,
		"reset_expiry": expiry,
	}).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	email.SendAsync(user.Email, email.SubjectResetCode, email.ResetCodeBody(user.Name, code))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If email exists, reset code sent."})
}

// VerifyResetCode checks a reset code without consuming it.
func VerifyResetCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil || user.ResetCode == nil || *user.ResetCode != req.Code ||
		user.ResetExpiry == nil || time.Now().After(*user.ResetExpiry) {
		fail(c, http.StatusBadRequest, "Invalid or expired code.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "userId": user.ID})
}

// ResetPassword replaces the credential and clears the reset code.
func ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		fail(c, http.StatusNotFound, "User not found.")
		return
	}
	if user.ResetCode == nil || user.ResetExpiry == nil || time.Now().After(*user.ResetExpiry) {
		fail(c, http.StatusBadRequest, "Invalid or expired token.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if err := config.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash": string(hash),
		"reset_code":    nil,
		"reset_expiry":  nil,
	}).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful."})
}

type AdminCreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
}

// AdminCreateUser provisions admin and rider accounts.
func AdminCreateUser(c *gin.Context) {
	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "All fields are required")
		return
	}

	validRoles := map[models.UserRole]bool{
		models.RoleUser:  true,
		models.RoleAdmin: true,
		models.RoleRider: true,
	}
	if !validRoles[req.Role] {
		fail(c, http.StatusBadRequest, "Invalid role. Must be: user, admin, or rider")
		return
	}

	var existing models.User
	if err := config.DB.Where("LOWER(email) = LOWER(?) OR LOWER(name) = LOWER(?)", req.Email, req.Name).
		First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         req.Role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Error("admin create user failed", logger.Err(err))
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userView(&user)})
}
