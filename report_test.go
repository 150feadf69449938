package main

import (
	"errors"
	"testing"

	"fintrack/pkg/money"
)

func TestComposeProfitLoss(t *testing.T) {
	pl, err := composeProfitLoss(
		func() (money.Amount, error) { return 100000, nil },
		func() (money.Amount, error) { return 40000, nil },
	)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Revenue != 100000 || pl.Expenses != 40000 || pl.Net != 60000 {
		t.Fatalf("profit/loss = %+v", pl)
	}
	if pl.Net != pl.Revenue-pl.Expenses {
		t.Fatal("net must equal revenue minus expenses")
	}
}

func TestComposeProfitLossNegativeNet(t *testing.T) {
	pl, err := composeProfitLoss(
		func() (money.Amount, error) { return 5000, nil },
		func() (money.Amount, error) { return 12000, nil },
	)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Net != -7000 {
		t.Fatalf("net = %d, want -7000", pl.Net)
	}
}

func TestComposeProfitLossPropagatesErrors(t *testing.T) {
	boom := errors.New("store down")
	_, err := composeProfitLoss(
		func() (money.Amount, error) { return 0, nil },
		func() (money.Amount, error) { return 0, boom },
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestStaticBalanceSheetTotalsDeriveFromLines(t *testing.T) {
	bs := staticBalanceSheetProvider{}.BalanceSheet()
	if bs.TotalAssets != sumLines(bs.Assets) {
		t.Fatal("totalAssets must be derived from the asset lines")
	}
	if bs.TotalLiabilities != sumLines(bs.Liabilities) {
		t.Fatal("totalLiabilities must be derived from the liability lines")
	}
	if bs.TotalEquity != sumLines(bs.Equity) {
		t.Fatal("totalEquity must be derived from the equity lines")
	}
	// the sample data balances
	if bs.TotalAssets != bs.TotalLiabilities+bs.TotalEquity {
		t.Fatalf("sheet does not balance: %d != %d + %d", bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity)
	}
}

func TestSumLinesEmpty(t *testing.T) {
	if sumLines(nil) != 0 {
		t.Fatal("empty line set must sum to 0")
	}
}
