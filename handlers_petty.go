package main

import (
	"net/http"

	"fintrack/models"
	"fintrack/pkg/money"

	"github.com/gin-gonic/gin"
)

type pettyRequest struct {
	Description string       `json:"description" binding:"required"`
	Category    string       `json:"category" binding:"required"`
	PaidTo      string       `json:"paidTo" binding:"required"`
	Amount      money.Amount `json:"amount" binding:"required"`
	Date        string       `json:"date"` // optional ISO8601
}

// createPettyHandler records a petty-cash disbursement for the authenticated user.
func createPettyHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req pettyRequest
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
	petty := models.PettyCash{
		Description: req.Description,
		Category:    req.Category,
		PaidTo:      req.PaidTo,
		Amount:      req.Amount,
		UserID:      user.ID,
		Date:        date,
	}
	if err := db.Create(&petty).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "create failed")
		return
	}
	c.JSON(http.StatusCreated, petty)
}

func listPettyHandler(c *gin.Context) {
	page := pageParam(c)
	items := []models.PettyCash{}
	result, err := paginate(db.Model(&models.PettyCash{}), page, &items)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "query failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

func getPettyHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var petty models.PettyCash
	if err := db.First(&petty, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Petty cash record not found")
		return
	}
	c.JSON(http.StatusOK, petty)
}

// updatePettyHandler replaces all mutable fields of a petty-cash record.
func updatePettyHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var petty models.PettyCash
	if err := db.First(&petty, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Petty cash record not found")
		return
	}
	if !canMutate(user, petty.UserID) {
		jsonError(c, http.StatusForbidden, "forbidden")
		return
	}
	var req pettyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		jsonError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}
	petty.Description = req.Description
	petty.Category = req.Category
	petty.PaidTo = req.PaidTo
	petty.Amount = req.Amount
	if req.Date != "" {
		date, err := parseRecordDate(req.Date)
		if err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		petty.Date = date
	}
	if err := db.Save(&petty).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "update failed")
		return
	}
	c.JSON(http.StatusOK, petty)
}

func deletePettyHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "user not found")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var petty models.PettyCash
	if err := db.First(&petty, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "Petty cash record not found")
		return
	}
	if !canMutate(user, petty.UserID) {
		jsonError(c, http.StatusForbidden, "forbidden")
		return
	}
	if err := db.Delete(&petty).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Petty cash record deleted successfully"})
}

func totalPettyHandler(c *gin.Context) {
	total, err := sumAmount(db.Model(&models.PettyCash{}))
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalPettyCash": total})
}
