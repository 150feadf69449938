package main

import (
	"fmt"
	"net/http"
	"time"

	"fintrack/models"
	"fintrack/pkg/money"

	"github.com/gin-gonic/gin"
)

type recordRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Amount      money.Amount `json:"amount" binding:"required"`
	Date        string       `json:"date"` // optional ISO8601
}

// parseRecordDate parses the optional date field. Empty means now;
// anything else must be RFC3339.
func parseRecordDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected RFC3339")
	}
	return t, nil
}

// createIncomeHandler records an income entry for the authenticated user.
func createIncomeHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		jsonError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}
	date, err := parseRecordDate(req.Date)
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	income := models.Income{
		Title:       req.Title,
		Description: req.Description,
		Type:        "Income",
		Amount:      req.Amount,
		UserID:      user.ID,
		Date:        date,
	}
	if err := db.Create(&income).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "create failed")
		return
	}
	c.JSON(http.StatusCreated, income)
}

// listIncomeHandler returns one page of income records with owners populated.
func listIncomeHandler(c *gin.Context) {
	page := pageParam(c)
	items := []models.Income{}
	result, err := paginate(db.Model(&models.Income{}).Preload("User"), page, &items)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "query failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

func getIncomeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var income models.Income
	if err := db.First(&income, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Income not found")
		return
	}
	c.JSON(http.StatusOK, income)
}

// updateIncomeHandler replaces all mutable fields of an income record.
func updateIncomeHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var income models.Income
	if err := db.First(&income, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Income not found")
		return
	}
	if !canMutate(user, income.UserID) {
		jsonError(c, http.StatusForbidden, "forbidden")
		return
	}
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		jsonError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}
	income.Title = req.Title
	income.Description = req.Description
	income.Amount = req.Amount
	if req.Date != "" {
		date, err := parseRecordDate(req.Date)
		if err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		income.Date = date
	}
	if err := db.Save(&income).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}
	c.JSON(http.StatusOK, income)
}

func deleteIncomeHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var income models.Income
	if err := db.First(&income, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Income not found")
		return
	}
	if !canMutate(user, income.UserID) {
		jsonError(c, http.StatusForbidden, "forbidden")
		return
	}
	if err := db.Delete(&income).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}

// totalIncomeHandler sums all income amounts. Totals are global across
// users, matching the dashboard's all-books view.
func totalIncomeHandler(c *gin.Context) {
	total, err := sumAmount(db.Model(&models.Income{}))
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalIncome": total})
}
