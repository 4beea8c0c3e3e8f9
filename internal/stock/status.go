// Package stock classifies supply quantities into Low, Moderate and High tiers.
package stock

import (
	"fmt"
	"math"
	"strings"
)

// DefaultMinQuantity is the threshold used when an item has none configured
const DefaultMinQuantity = 10

// Status is a stock tier. Tiers are ordered Low < Moderate < High.
type Status string

const (
	StatusLow      Status = "Low"
	StatusModerate Status = "Moderate"
	StatusHigh     Status = "High"
)

// AllStatuses lists the tiers in ascending order
var AllStatuses = []Status{StatusLow, StatusModerate, StatusHigh}

// Rank returns the tier's position (0 for Low), or -1 for an unknown status
func (s Status) Rank() int {
	switch s {
	case StatusLow:
		return 0
	case StatusModerate:
		return 1
	case StatusHigh:
		return 2
	default:
		return -1
	}
}

// Less reports whether s is a lower tier than other
func (s Status) Less(other Status) bool {
	return s.Rank() < other.Rank()
}

// ParseStatus matches a status name case-insensitively
func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// Thresholds are the upper bounds of the Low and Moderate tiers. High is
// twice the minimum and does not take part in classification.
type Thresholds struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
}

// Description holds a human-readable quantity range for each tier
type Description struct {
	Low      string `json:"low"`
	Moderate string `json:"moderate"`
	High     string `json:"high"`
}

// Result is the outcome of a classification
type Result struct {
	Status      Status      `json:"status"`
	Quantity    int         `json:"quantity"`
	Thresholds  Thresholds  `json:"thresholds"`
	Description Description `json:"description"`
}

// NewThresholds derives tier bounds from a minimum quantity. A non-positive
// minQuantity falls back to DefaultMinQuantity. Bounds saturate at
// math.MaxInt, which classifies every representable quantity the same way
// the unbounded bound would.
func NewThresholds(minQuantity int) Thresholds {
	if minQuantity <= 0 {
		minQuantity = DefaultMinQuantity
	}
	return Thresholds{
		Low:      minQuantity,
		Moderate: saturatingAdd(minQuantity, minQuantity/2),
		High:     saturatingAdd(minQuantity, minQuantity),
	}
}

// saturatingAdd adds two non-negative ints, capping at math.MaxInt
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Classify returns the tier for quantity. Negative quantities count as zero.
func (t Thresholds) Classify(quantity int) Status {
	if quantity < 0 {
		quantity = 0
	}
	switch {
	case quantity <= t.Low:
		return StatusLow
	case quantity <= t.Moderate:
		return StatusModerate
	default:
		return StatusHigh
	}
}

// Describe renders the quantity range of each tier
func (t Thresholds) Describe() Description {
	return Description{
		Low:      fmt.Sprintf("≤ %d pieces", t.Low),
		Moderate: fmt.Sprintf("%d - %d pieces", saturatingAdd(t.Low, 1), t.Moderate),
		High:     fmt.Sprintf("> %d pieces", t.Moderate),
	}
}

// CalculateStockStatus classifies quantity against minQuantity
func CalculateStockStatus(quantity, minQuantity int) Result {
	t := NewThresholds(minQuantity)
	return Result{
		Status:      t.Classify(quantity),
		Quantity:    quantity,
		Thresholds:  t,
		Description: t.Describe(),
	}
}
