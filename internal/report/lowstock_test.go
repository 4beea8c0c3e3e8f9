package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"supply-service/internal/stock"
)

var sampleItems = []Item{
	{ID: "1", Name: "Stapler", Category: "desk", Subcategory: "staplers", Quantity: 25, MinQuantity: 10, Unit: "pcs"},
	{ID: "2", Name: "Gel Pen", Category: "writing", Subcategory: "pens", Quantity: 4, MinQuantity: 10, Unit: "pcs"},
	{ID: "3", Name: "Bond Paper", Category: "paper", Subcategory: "bond_paper", Quantity: 12, MinQuantity: 10, Unit: "ream"},
	{ID: "4", Name: "Binder Clip", Category: "filing", Subcategory: "clips", Quantity: 4, MinQuantity: 5, Unit: "box"},
	{ID: "5", Name: "USB Drive", Category: "tech", Subcategory: "usb_drives", Quantity: 0, MinQuantity: 0},
}

var reportTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterLow, f)

	f, err = ParseFilter(" Attention ")
	require.NoError(t, err)
	assert.Equal(t, FilterAttention, f)

	_, err = ParseFilter("critical")
	assert.Error(t, err)
}

func TestBuild_LowOnly(t *testing.T) {
	r := Build(sampleItems, FilterLow, reportTime)

	require.Len(t, r.Rows, 3)
	assert.Equal(t, "USB Drive", r.Rows[0].Name)
	assert.Equal(t, "Binder Clip", r.Rows[1].Name)
	assert.Equal(t, "Gel Pen", r.Rows[2].Name)
	for _, row := range r.Rows {
		assert.Equal(t, stock.StatusLow, row.Status)
		assert.Equal(t, "bg-red-100", row.Colors.BG)
	}

	assert.Equal(t, 5, r.ItemCount)
	assert.Equal(t, map[stock.Status]int{
		stock.StatusLow:      3,
		stock.StatusModerate: 1,
		stock.StatusHigh:     1,
	}, r.Totals)
}

func TestBuild_OrderingAndLabels(t *testing.T) {
	r := Build(sampleItems, FilterAll, reportTime)

	require.Len(t, r.Rows, 5)
	assert.Equal(t, stock.StatusModerate, r.Rows[3].Status)
	assert.Equal(t, "Bond Paper", r.Rows[3].SubcategoryLabel)
	assert.Equal(t, stock.StatusHigh, r.Rows[4].Status)
	assert.Equal(t, "Desk Accessories", r.Rows[4].CategoryLabel)
	assert.Equal(t, "Clips & Fasteners", r.Rows[1].SubcategoryLabel)
	assert.Equal(t, stock.DefaultMinQuantity, r.Rows[0].Thresholds.Low)

	attention := Build(sampleItems, FilterAttention, reportTime)
	assert.Len(t, attention.Rows, 4)
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil, FilterAll, reportTime)
	assert.NotNil(t, r.Rows)
	assert.Empty(t, r.Rows)
	assert.Equal(t, 0, r.Totals[stock.StatusLow])
}

func TestWriteXLSX(t *testing.T) {
	r := Build(sampleItems, FilterAttention, reportTime)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetReport)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, reportHeaders, rows[0])
	assert.Equal(t, []string{"USB Drive", "tech", "USB Drives", "0", "", "10", "Low"}, rows[1])
	assert.Equal(t, "Moderate", rows[4][6])

	summary, err := f.GetRows(sheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Items", "5"}, summary[3])
	assert.Equal(t, []string{"Low Stock", "3"}, summary[4])

	assert.Equal(t, "low-stock-report-2026-03-14.xlsx", Filename(r))
}
