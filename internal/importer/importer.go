package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	catalogsvc "storeledger/internal/service/catalog"
	"github.com/shopspring/decimal"
)

// CSVImporter reads product rows and registers them with the catalog.
// Expected header: product_id,name,price,stock,category,featured. The
// featured column is optional, as is each product_id (blank IDs get
// generated ones).
type CSVImporter struct {
	reader  *csv.Reader
	catalog *catalogsvc.Service
}

func NewCSVImporter(r io.Reader, catalog *catalogsvc.Service) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may omit trailing columns
	return &CSVImporter{reader: csvr, catalog: catalog}
}

// Run parses rows and adds each product, returning the number imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		name := field(record, index, "name")
		if name == "" {
			continue
		}
		price, err := decimal.NewFromString(field(record, index, "price"))
		if err != nil {
			return imported, fmt.Errorf("row %d: parse price: %w", imported+1, err)
		}
		stock, err := strconv.Atoi(field(record, index, "stock"))
		if err != nil {
			return imported, fmt.Errorf("row %d: parse stock: %w", imported+1, err)
		}

		p, err := i.catalog.Add(ctx, catalogsvc.AddInput{
			ID:       field(record, index, "product_id"),
			Name:     name,
			Price:    price,
			Stock:    stock,
			Category: field(record, index, "category"),
		})
		if err != nil {
			return imported, fmt.Errorf("add product %q: %w", name, err)
		}
		if featured, _ := strconv.ParseBool(field(record, index, "featured")); featured {
			if err := i.catalog.MarkFeatured(ctx, p.ID); err != nil {
				return imported, err
			}
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
