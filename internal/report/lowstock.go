// Package report builds the low-stock report shown on the reports page and
// exports it as a spreadsheet.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"supply-service/internal/catalog"
	"supply-service/internal/stock"
)

// Filter selects which tiers appear in a report
type Filter string

const (
	FilterLow       Filter = "low"
	FilterAttention Filter = "attention" // Low and Moderate
	FilterAll       Filter = "all"
)

// ParseFilter accepts an empty string as FilterLow
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterLow, nil
	case FilterLow, FilterAttention, FilterAll:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report filter %q", s)
	}
}

func (f Filter) includes(s stock.Status) bool {
	switch f {
	case FilterLow:
		return s == stock.StatusLow
	case FilterAttention:
		return s == stock.StatusLow || s == stock.StatusModerate
	default:
		return true
	}
}

// Item is a supply as the inventory backend reports it
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=255"`
	Category    string `json:"category" validate:"max=64"`
	Subcategory string `json:"subcategory,omitempty" validate:"max=64"`
	Unit        string `json:"unit,omitempty" validate:"max=32"`
	Quantity    int    `json:"quantity" validate:"gte=0,max=1000000000"`
	MinQuantity int    `json:"min_quantity" validate:"gte=0,max=1000000000"`
}

// Row is a classified item
type Row struct {
	Item
	CategoryLabel    string            `json:"category_label"`
	SubcategoryLabel string            `json:"subcategory_label,omitempty"`
	Status           stock.Status      `json:"status"`
	Thresholds       stock.Thresholds  `json:"thresholds"`
	Colors           stock.Colors      `json:"colors"`
	Description      stock.Description `json:"description"`
}

// Report is a filtered, ordered set of rows. Totals count every input
// item by tier, including those the filter dropped.
type Report struct {
	Filter      Filter               `json:"filter"`
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []Row                `json:"rows"`
	Totals      map[stock.Status]int `json:"totals"`
	ItemCount   int                  `json:"item_count"`
}

// Build classifies items and orders the kept rows by tier, then quantity,
// then name.
func Build(items []Item, filter Filter, now time.Time) Report {
	r := Report{
		Filter:      filter,
		GeneratedAt: now.UTC(),
		Rows:        make([]Row, 0, len(items)),
		Totals:      make(map[stock.Status]int, len(stock.AllStatuses)),
		ItemCount:   len(items),
	}
	for _, s := range stock.AllStatuses {
		r.Totals[s] = 0
	}

	for _, it := range items {
		res := stock.CalculateStockStatus(it.Quantity, it.MinQuantity)
		r.Totals[res.Status]++
		if !filter.includes(res.Status) {
			continue
		}
		r.Rows = append(r.Rows, Row{
			Item:             it,
			CategoryLabel:    catalog.CategoryLabel(it.Category),
			SubcategoryLabel: catalog.SubcategoryLabel(it.Category, it.Subcategory),
			Status:           res.Status,
			Thresholds:       res.Thresholds,
			Colors:           res.Status.Colors(),
			Description:      res.Description,
		})
	}

	sort.SliceStable(r.Rows, func(i, j int) bool {
		a, b := r.Rows[i], r.Rows[j]
		if a.Status != b.Status {
			return a.Status.Less(b.Status)
		}
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		return a.Name < b.Name
	})

	return r
}
