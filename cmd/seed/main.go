package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"broker_backend/internal/feature/stocks/adapters"
	"broker_backend/internal/feature/stocks/domain/entity"
	"broker_backend/internal/feature/stocks/usecase"
	platformdb "broker_backend/internal/platform/db"
)

// seedStocks is a starter set of B3-listed companies.
var seedStocks = []entity.Stock{
	{Symbol: "PETR4", CompanyName: "Petrobras", Price: decimal.RequireFromString("38.40")},
	{Symbol: "VALE3", CompanyName: "Vale", Price: decimal.RequireFromString("61.10")},
	{Symbol: "ITUB4", CompanyName: "Itau Unibanco", Price: decimal.RequireFromString("33.75")},
	{Symbol: "BBDC4", CompanyName: "Bradesco", Price: decimal.RequireFromString("13.02")},
	{Symbol: "ABEV3", CompanyName: "Ambev", Price: decimal.RequireFromString("12.88")},
	{Symbol: "MGLU3", CompanyName: "Magazine Luiza", Price: decimal.RequireFromString("2.04")},
	{Symbol: "WEGE3", CompanyName: "WEG", Price: decimal.RequireFromString("52.30")},
	{Symbol: "B3SA3", CompanyName: "B3", Price: decimal.RequireFromString("11.45")},
}

// seedMissing inserts every stock whose symbol is not already present
// and returns the number inserted.
func seedMissing(ctx context.Context, repo usecase.StockRepository, stocks []entity.Stock) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s.Symbol] = true
	}

	seeded := 0
	for i := range stocks {
		if known[stocks[i].Symbol] {
			continue
		}
		if _, err := repo.Save(ctx, &stocks[i]); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

func main() {
	db := platformdb.OpenDB()
	repo := adapters.NewStockRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded, err := seedMissing(ctx, repo, seedStocks)
	if err != nil {
		log.Fatal("seed failed:", err)
	}
	log.Printf("seed ok: %d inserted, %d already present", seeded, len(seedStocks)-seeded)
}
