package main

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// createExpenseHandler records an expense entry for the authenticated user.
func createExpenseHandler(c *gin.Context) {
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
	expense := models.Expense{
		Title:       req.Title,
		Description: req.Description,
		Type:        "Expense",
		Amount:      req.Amount,
		UserID:      user.ID,
		Date:        date,
	}
	if err := db.Create(&expense).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "create failed")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// listExpensesHandler returns one page of expense records with owners populated.
func listExpensesHandler(c *gin.Context) {
	page := pageParam(c)
	items := []models.Expense{}
	result, err := paginate(db.Model(&models.Expense{}).Preload("User"), page, &items)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "query failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

func getExpenseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Expense not found")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// updateExpenseHandler replaces all mutable fields of an expense record.
func updateExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Expense not found")
		return
	}
	if !canMutate(user, expense.UserID) {
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
	expense.Title = req.Title
	expense.Description = req.Description
	expense.Amount = req.Amount
	if req.Date != "" {
		date, err := parseRecordDate(req.Date)
		if err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		expense.Date = date
	}
	if err := db.Save(&expense).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}
	c.JSON(http.StatusOK, expense)
}

func deleteExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Expense not found")
		return
	}
	if !canMutate(user, expense.UserID) {
		jsonError(c, http.StatusForbidden, "forbidden")
		return
	}
	if err := db.Delete(&expense).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

func totalExpensesHandler(c *gin.Context) {
	total, err := sumAmount(db.Model(&models.Expense{}))
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalExpenses": total})
}
