package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"starbrew/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads menu exports and inserts/updates catalog products.
// Expected header: id,name,description,price,category,image. Price is in
// dollars ("3.25") or cents when the column is named price_cents.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, productRepo: repo}
}

// Run parses CSV rows and upserts products. It returns the number of
// imported rows; a malformed row aborts the whole import.
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

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+1, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert %s: %w", p.ID, err)
		}
		imported++
	}
	return imported, nil
}

type columnIndex struct {
	id, name, desc, price, priceCents, category, image int
}

func headerIndex(headers []string) columnIndex {
	idx := columnIndex{id: -1, name: -1, desc: -1, price: -1, priceCents: -1, category: -1, image: -1}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			idx.id = i
		case "name":
			idx.name = i
		case "description":
			idx.desc = i
		case "price":
			idx.price = i
		case "price_cents":
			idx.priceCents = i
		case "category":
			idx.category = i
		case "image", "image_url":
			idx.image = i
		}
	}
	return idx
}

func parseRow(record []string, idx columnIndex) (domain.Product, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	p := domain.Product{
		ID:          field(idx.id),
		Name:        field(idx.name),
		Description: field(idx.desc),
		Category:    field(idx.category),
		ImageURL:    field(idx.image),
	}
	if p.ID == "" {
		return p, errors.New("missing id")
	}
	if p.Name == "" {
		return p, errors.New("missing name")
	}
	if p.Category == "" {
		return p, errors.New("missing category")
	}

	cents, err := parsePrice(field(idx.price), field(idx.priceCents))
	if err != nil {
		return p, err
	}
	p.PriceCents = cents
	return p, nil
}

func parsePrice(dollars, cents string) (int64, error) {
	if cents != "" {
		n, err := strconv.ParseInt(cents, 10, 64)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid price_cents %q", cents)
		}
		return n, nil
	}
	if dollars == "" {
		return 0, errors.New("missing price")
	}
	f, err := strconv.ParseFloat(dollars, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid price %q", dollars)
	}
	return int64(math.Round(f * 100)), nil
}
