// Package importer reads and writes the product catalog as CSV.
//
// Each product starts with a row carrying its id. Rows with an empty id are
// continuation rows and only contribute extra specification pairs to the
// product above them.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"shopfront/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Header is the column order Write emits and Parse expects.
var Header = []string{
	"id", "name", "description", "price", "originalPrice", "image", "category",
	"rating", "reviewCount", "inStock", "exchangeValue", "spec.name", "spec.value",
}

type csvRow struct {
	ID            string `validate:"required"`
	Name          string `validate:"required"`
	Description   string
	Price         int64   `validate:"gt=0"`
	OriginalPrice *int64  `validate:"omitempty,gt=0"`
	Image         string  `validate:"omitempty,url"`
	Category      string  `validate:"required,category"`
	Rating        float64 `validate:"gte=0,lte=5"`
	ReviewCount   int     `validate:"gte=0"`
	InStock       bool
	ExchangeValue *int64 `validate:"omitempty,gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("register category validation: %v", err))
	}
	return v
}

// LoadFile parses the catalog CSV at path.
func LoadFile(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a catalog CSV. Product ids must be unique.
func Parse(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // continuation rows may be short

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"id", "name", "price", "category"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var (
		products []domain.Product
		seen     = map[string]bool{}
		line     = 1
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		id := pick(record, index, "id")
		specName := pick(record, index, "spec.name")
		specValue := pick(record, index, "spec.value")

		if id == "" {
			if specName == "" {
				continue
			}
			if len(products) == 0 {
				return nil, fmt.Errorf("line %d: specification row before any product", line)
			}
			products[len(products)-1].Specifications[specName] = specValue
			continue
		}

		row, err := parseRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := validate.Struct(row); err != nil {
			return nil, fmt.Errorf("line %d: invalid product %q: %w", line, id, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("line %d: duplicate product id %q", line, id)
		}
		seen[id] = true

		p := row.product()
		if specName != "" {
			p.Specifications[specName] = specValue
		}
		products = append(products, p)
	}
	return products, nil
}

// Write emits products in Header order. Specifications are written in key
// order, the first on the product row and the rest on continuation rows.
func Write(w io.Writer, products []domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range products {
		keys := make([]string, 0, len(p.Specifications))
		for k := range p.Specifications {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		first := []string{"", ""}
		if len(keys) > 0 {
			first = []string{keys[0], p.Specifications[keys[0]]}
		}
		row := []string{
			p.ID,
			p.Name,
			p.Description,
			strconv.FormatInt(p.Price, 10),
			optional(p.OriginalPrice),
			p.Image,
			string(p.Category),
			strconv.FormatFloat(p.Rating, 'f', -1, 64),
			strconv.Itoa(p.ReviewCount),
			strconv.FormatBool(p.InStock),
			optional(p.ExchangeValue),
			first[0],
			first[1],
		}
		if err := cw.Write(row); err != nil {
			return err
		}
		for _, k := range keys[min(1, len(keys)):] {
			cont := make([]string, len(Header))
			cont[len(cont)-2] = k
			cont[len(cont)-1] = p.Specifications[k]
			if err := cw.Write(cont); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r csvRow) product() domain.Product {
	return domain.Product{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		Image:          r.Image,
		Category:       domain.Category(r.Category),
		Rating:         r.Rating,
		ReviewCount:    r.ReviewCount,
		InStock:        r.InStock,
		ExchangeValue:  r.ExchangeValue,
		Specifications: map[string]string{},
		Reviews:        []domain.Review{},
	}
}

func parseRow(record []string, index map[string]int) (csvRow, error) {
	row := csvRow{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
		Category:    strings.ToLower(pick(record, index, "category")),
		InStock:     true,
	}

	var err error
	if row.Price, err = parseInt(pick(record, index, "price")); err != nil {
		return row, fmt.Errorf("price: %w", err)
	}
	if row.OriginalPrice, err = parseOptional(pick(record, index, "originalPrice")); err != nil {
		return row, fmt.Errorf("originalPrice: %w", err)
	}
	if row.ExchangeValue, err = parseOptional(pick(record, index, "exchangeValue")); err != nil {
		return row, fmt.Errorf("exchangeValue: %w", err)
	}
	if v := pick(record, index, "rating"); v != "" {
		if row.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return row, fmt.Errorf("rating: %w", err)
		}
	}
	if v := pick(record, index, "reviewCount"); v != "" {
		if row.ReviewCount, err = strconv.Atoi(v); err != nil {
			return row, fmt.Errorf("reviewCount: %w", err)
		}
	}
	if v := pick(record, index, "inStock"); v != "" {
		if row.InStock, err = strconv.ParseBool(v); err != nil {
			return row, fmt.Errorf("inStock: %w", err)
		}
	}
	return row, nil
}

func parseInt(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func parseOptional(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optional(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
