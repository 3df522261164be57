package main

import (
	"context"
	"log"
	"os"
	"time"

	"storeledger/internal/cli"
	"storeledger/internal/config"
	"storeledger/internal/importer"
	customerrepo "storeledger/internal/repository/customer"
	orderrepo "storeledger/internal/repository/order"
	productrepo "storeledger/internal/repository/product"
	"storeledger/internal/seed"
	catalogsvc "storeledger/internal/service/catalog"
	directorysvc "storeledger/internal/service/directory"
	ledgersvc "storeledger/internal/service/ledger"
	storesvc "storeledger/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[store] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()

	productRepo := productrepo.NewMemory(logger)
	customerRepo := customerrepo.NewMemory(logger)
	orderRepo := orderrepo.NewMemory(logger)

	catalogService := catalogsvc.New(productRepo)
	directoryService := directorysvc.New(customerRepo)
	ledgerService := ledgersvc.New(orderRepo, catalogService, directoryService)
	store := storesvc.New(catalogService, directoryService, ledgerService)

	if cfg.SeedDemo {
		if err := seed.Apply(ctx, catalogService, directoryService); err != nil {
			logger.Fatalf("seed demo data: %v", err)
		}
		logger.Printf("demo data seeded")
	}

	if cfg.CatalogCSV != "" {
		f, err := os.Open(cfg.CatalogCSV)
		if err != nil {
			logger.Fatalf("open catalog csv: %v", err)
		}
		imp := importer.NewCSVImporter(f, catalogService)
		start := time.Now()
		count, err := imp.Run(ctx)
		f.Close()
		if err != nil {
			logger.Fatalf("import catalog: %v", err)
		}
		logger.Printf("imported %d products in %s", count, time.Since(start).Truncate(time.Millisecond))
	}

	if err := cli.New(store, os.Stdin, os.Stdout).Run(ctx); err != nil {
		logger.Fatalf("run menu: %v", err)
	}
}
