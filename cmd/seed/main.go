package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ikkim/landing-studio/config"
	"github.com/ikkim/landing-studio/internal/app/repository"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/db"
	"github.com/ikkim/landing-studio/internal/storefront"
	"github.com/ikkim/landing-studio/internal/tracking"
	"github.com/ikkim/landing-studio/pkg/redis"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet column order.
const (
	colID = iota
	colName
	colPrice
	colDescription
	colImageURL
	colActive
	colBadge
	colSKU
)

func main() {
	siteID := flag.String("site", "", "storefront site id")
	filePath := flag.String("file", "", "path to the products .xlsx file")
	sheet := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if *siteID == "" || *filePath == "" {
		log.Fatal("Usage: seed -site <id> -file products.xlsx [-sheet Products] [-yes]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	fmt.Printf("Reading XLSX file: %s\n", *filePath)
	products, skipped, err := readProductsFromXLSX(*filePath, *sheet)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Products to import: %d (skipped rows: %d)\n", len(products), skipped)

	if !*yes {
		fmt.Print("This replaces the whole product list. Proceed? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	opts := service.SiteServiceOptions{
		Backend: storefront.BackendParams{
			APIKey:           cfg.Storefront.APIKey,
			AuthDomain:       cfg.Storefront.AuthDomain,
			ProjectID:        cfg.Storefront.ProjectID,
			AppID:            cfg.Storefront.AppID,
			SDKURL:           cfg.Storefront.SDKURL,
			OrdersCollection: cfg.Storefront.OrdersCollection,
		},
	}
	// A published page cached by the server must not outlive the import.
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err == nil {
			opts.Cache = redis.NewPageCache(redis.GetClient(), cfg.Redis.PageTTL)
			defer redis.Close()
		}
	}

	siteService := service.NewSiteService(
		repository.NewSiteRepository(db.GetDB()),
		repository.NewMetricRepository(db.GetDB()),
		nil,
		tracking.NewInjector(cfg.Server.PublicBaseURL),
		opts,
	)

	site, err := siteService.Get(*siteID, "")
	if err != nil {
		log.Fatal("Failed to load site:", err)
	}
	current, err := siteService.StorefrontProducts(site)
	if err != nil {
		log.Fatal("Failed to read current storefront:", err)
	}

	current.Products = products
	if _, err := siteService.SaveStorefront(site.ID, "", current); err != nil {
		log.Fatal("Failed to save storefront:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath, sheetName string) ([]storefront.StoreProduct, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in sheet %q", sheetName)
	}

	products, skipped := parseProductRows(rows[1:])
	return products, skipped, nil
}

// parseProductRows converts data rows (header already removed). Rows without
// a name are skipped.
func parseProductRows(rows [][]string) ([]storefront.StoreProduct, int) {
	var products []storefront.StoreProduct
	skipped := 0

	for _, row := range rows {
		name := cell(row, colName)
		if name == "" {
			skipped++
			continue
		}

		products = append(products, storefront.StoreProduct{
			ID:          cell(row, colID),
			Name:        name,
			PriceCents:  parsePriceCents(cell(row, colPrice)),
			Description: cell(row, colDescription),
			ImageURL:    cell(row, colImageURL),
			Active:      parseActive(cell(row, colActive)),
			Badge:       cell(row, colBadge),
			SKU:         cell(row, colSKU),
		})
	}

	return products, skipped
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parsePriceCents reads a major-unit price such as "1,234.50" or "19.9".
func parsePriceCents(s string) int64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return storefront.ClampPrice(v * 100)
}

// parseActive treats a blank cell as active.
func parseActive(s string) bool {
	switch strings.ToLower(s) {
	case "", "1", "true", "yes", "y", "si", "sí", "x":
		return true
	default:
		return false
	}
}
