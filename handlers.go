package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Welcome to the Expenses Tracker API"})
	})
	api := r.Group("/api")
	api.POST("/users/register", registerHandler)
	api.POST("/users/login", loginHandler)

	authGroup := api.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/users", listUsersHandler)
	authGroup.PUT("/users/:id", updateUserHandler)

	authGroup.POST("/income", createIncomeHandler)
	authGroup.GET("/income", listIncomeHandler)
	authGroup.GET("/income/total", totalIncomeHandler)
	authGroup.GET("/income/:id", getIncomeHandler)
	authGroup.PUT("/income/:id", updateIncomeHandler)
	authGroup.DELETE("/income/:id", deleteIncomeHandler)

	authGroup.POST("/expenses", createExpenseHandler)
	authGroup.GET("/expenses", listExpensesHandler)
	authGroup.GET("/expenses/total", totalExpensesHandler)
	authGroup.GET("/expenses/:id", getExpenseHandler)
	authGroup.PUT("/expenses/:id", updateExpenseHandler)
	authGroup.DELETE("/expenses/:id", deleteExpenseHandler)

	authGroup.POST("/petty", createPettyHandler)
	authGroup.GET("/petty", listPettyHandler)
	authGroup.GET("/petty/total", totalPettyHandler)
	authGroup.GET("/petty/:id", getPettyHandler)
	authGroup.PUT("/petty/:id", updatePettyHandler)
	authGroup.DELETE("/petty/:id", deletePettyHandler)

	authGroup.GET("/reports/profit-loss", profitLossHandler)
	authGroup.GET("/reports/balance-sheet", balanceSheetHandler)
}

// jsonError writes the API's uniform error body.
func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			jsonError(c, http.StatusUnauthorized, "missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			jsonError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			jsonError(c, http.StatusUnauthorized, "invalid claims")
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		admin, _ := claims["admin"].(bool)
		c.Set("email", email)
		c.Set("admin", admin)
		c.Next()
	}
}

// getUserFromContext fetches the currently authenticated user using the email set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	emailVal, _ := c.Get("email")
	if emailVal == nil {
		return nil, false
	}
	email := emailVal.(string)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// idParam parses the :id path parameter, rejecting non-numeric input
// before it can reach the store.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

// canMutate reports whether the caller may modify a record owned by ownerID.
// Admins may modify anything, everyone else only their own records.
func canMutate(user *models.User, ownerID uint) bool {
	return user.IsAdmin || user.ID == ownerID
}

func registerHandler(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstname" binding:"required"`
		LastName  string `json:"lastname" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := RegisterUser(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errUserExists) {
			jsonError(c, http.StatusConflict, err.Error())
		} else {
			jsonError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		jsonError(c, http.StatusUnauthorized, err.Error())
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"admin": user.IsAdmin,
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"firstname": user.FirstName,
		"lastname":  user.LastName,
		"email":     user.Email,
		"isAdmin":   user.IsAdmin,
		"token":     tokenString,
	})
}

// listUsersHandler returns all users; admin only.
func listUsersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	if !user.IsAdmin {
		jsonError(c, http.StatusForbidden, "admin access required")
		return
	}
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "query failed")
		return
	}
	c.JSON(http.StatusOK, users)
}

// updateUserHandler replaces a user's profile fields. Users may update
// themselves; only admins may update others or grant the admin flag.
func updateUserHandler(c *gin.Context) {
	caller, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var target models.User
	if err := db.First(&target, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "user not found")
		return
	}
	if !canMutate(caller, target.ID) {
		jsonError(c, http.StatusForbidden, "forbidden")
		return
	}
	var req struct {
		FirstName string `json:"firstname" binding:"required"`
		LastName  string `json:"lastname" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password"`
		IsAdmin   *bool  `json:"isAdmin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	target.FirstName = req.FirstName
	target.LastName = req.LastName
	target.Email = req.Email
	if req.Password != "" {
		if len(req.Password) < 6 {
			jsonError(c, http.StatusBadRequest, "password too short (min 6)")
			return
		}
		hashed, err := hashPassword(req.Password)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to hash password")
			return
		}
		target.HashedPassword = hashed
	}
	if req.IsAdmin != nil && caller.IsAdmin {
		target.IsAdmin = *req.IsAdmin
	}
	if err := db.Save(&target).Error; err != nil {
		if isUniqueConstraintError(err) {
			jsonError(c, http.StatusConflict, "email already in use")
			return
		}
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}
	c.JSON(http.StatusOK, target)
}
