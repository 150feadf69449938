package main

import (
	"fintrack/pkg/money"

	"golang.org/x/sync/errgroup"
)

// ProfitLoss is the statement derived from the income and expense totals.
type ProfitLoss struct {
	Revenue  money.Amount `json:"revenue"`
	Expenses money.Amount `json:"expenses"`
	Net      money.Amount `json:"net"`
}

type totalFn func() (money.Amount, error)

// composeProfitLoss fans out the two total queries and combines them.
// Net is always revenue minus expenses.
func composeProfitLoss(revenue, expenses totalFn) (ProfitLoss, error) {
	var pl ProfitLoss
	var g errgroup.Group
	g.Go(func() error {
		v, err := revenue()
		pl.Revenue = v
		return err
	})
	g.Go(func() error {
		v, err := expenses()
		pl.Expenses = v
		return err
	})
	if err := g.Wait(); err != nil {
		return ProfitLoss{}, err
	}
	pl.Net = pl.Revenue - pl.Expenses
	return pl, nil
}

// BalanceLine is a single named position on the balance sheet.
type BalanceLine struct {
	Name   string       `json:"name"`
	Amount money.Amount `json:"amount"`
}

// BalanceSheet groups positions into the three classic sections. Section
// totals are always derived from the lines, never stored.
type BalanceSheet struct {
	Assets           []BalanceLine `json:"assets"`
	Liabilities      []BalanceLine `json:"liabilities"`
	Equity           []BalanceLine `json:"equity"`
	TotalAssets      money.Amount  `json:"totalAssets"`
	TotalLiabilities money.Amount  `json:"totalLiabilities"`
	TotalEquity      money.Amount  `json:"totalEquity"`
}

// BalanceSheetProvider supplies the balance-sheet positions. The default
// provider serves static reference data; a real ledger-backed provider can
// be swapped in without touching the report handler.
type BalanceSheetProvider interface {
	BalanceSheet() BalanceSheet
}

func sumLines(lines []BalanceLine) money.Amount {
	var total money.Amount
	for _, l := range lines {
		total += l.Amount
	}
	return total
}

func composeBalanceSheet(assets, liabilities, equity []BalanceLine) BalanceSheet {
	return BalanceSheet{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumLines(assets),
		TotalLiabilities: sumLines(liabilities),
		TotalEquity:      sumLines(equity),
	}
}

// staticBalanceSheetProvider returns fixed sample positions, amounts in
// minor units.
type staticBalanceSheetProvider struct{}

func (staticBalanceSheetProvider) BalanceSheet() BalanceSheet {
	assets := []BalanceLine{
		{Name: "Cash", Amount: 5000000},
		{Name: "Accounts Receivable", Amount: 3000000},
		{Name: "Inventory", Amount: 2000000},
		{Name: "Property, Plant & Equipment", Amount: 15000000},
	}
	liabilities := []BalanceLine{
		{Name: "Accounts Payable", Amount: 2500000},
		{Name: "Short-term Loans", Amount: 4000000},
		{Name: "Long-term Debt", Amount: 6000000},
	}
	equity := []BalanceLine{
		{Name: "Common Stock", Amount: 5000000},
		{Name: "Retained Earnings", Amount: 7500000},
	}
	return composeBalanceSheet(assets, liabilities, equity)
}

var balanceSheetProvider BalanceSheetProvider = staticBalanceSheetProvider{}
