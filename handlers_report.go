package main

import (
	"net/http"

	"fintrack/models"
	"fintrack/pkg/money"

	"github.com/gin-gonic/gin"
)

// profitLossHandler combines the income and expense totals into a
// profit-and-loss statement.
func profitLossHandler(c *gin.Context) {
	pl, err := composeProfitLoss(
		func() (money.Amount, error) { return sumAmount(db.Model(&models.Income{})) },
		func() (money.Amount, error) { return sumAmount(db.Model(&models.Expense{})) },
	)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, pl)
}

func balanceSheetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, balanceSheetProvider.BalanceSheet())
}
