// Package catalog holds the category, subcategory and variation lookup
// tables that supply items are classified with.
package catalog

// Option is a selectable value and its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CategoryTech is kept so items created before it was retired still resolve
const CategoryTech = "tech"

var categories = []Option{
	{Value: "writing", Label: "Writing Instruments"},
	{Value: "paper", Label: "Paper Products"},
	{Value: "filing", Label: "Filing & Storage"},
	{Value: "desk", Label: "Desk Accessories"},
	{Value: "other", Label: "Other"},
}

var subcategories = map[string][]Option{
	"writing": {
		{Value: "pens", Label: "Pens"},
		{Value: "pencils", Label: "Pencils"},
		{Value: "markers", Label: "Markers"},
		{Value: "highlighters", Label: "Highlighters"},
	},
	"paper": {
		{Value: "bond_paper", Label: "Bond Paper"},
		{Value: "notebooks", Label: "Notebooks"},
		{Value: "sticky_notes", Label: "Sticky Notes"},
		{Value: "specialty_paper", Label: "Specialty Paper"},
	},
	"filing": {
		{Value: "folders", Label: "Folders"},
		{Value: "binders", Label: "Binders"},
		{Value: "clips", Label: "Clips & Fasteners"},
		{Value: "storage_boxes", Label: "Storage Boxes"},
	},
	"desk": {
		{Value: "staplers", Label: "Staplers"},
		{Value: "tape", Label: "Tape & Adhesives"},
		{Value: "scissors", Label: "Scissors"},
		{Value: "organizers", Label: "Desk Organizers"},
	},
	"other": {
		{Value: "cleaning", Label: "Cleaning Supplies"},
		{Value: "misc", Label: "Miscellaneous"},
	},
	CategoryTech: {
		{Value: "usb_drives", Label: "USB Drives"},
		{Value: "cables", Label: "Cables"},
		{Value: "peripherals", Label: "Computer Peripherals"},
		{Value: "batteries", Label: "Batteries"},
	},
}

var variations = map[string][]Option{
	"writing": {
		{Value: "ballpoint", Label: "Ballpoint"},
		{Value: "gel", Label: "Gel"},
		{Value: "fountain", Label: "Fountain"},
		{Value: "rollerball", Label: "Rollerball"},
		{Value: "felt_tip", Label: "Felt Tip"},
		{Value: "mechanical", Label: "Mechanical"},
		{Value: "wooden", Label: "Wooden"},
		{Value: "colored", Label: "Colored"},
		{Value: "permanent", Label: "Permanent"},
		{Value: "erasable", Label: "Erasable"},
	},
	"paper": {
		{Value: "a4", Label: "A4 Size"},
		{Value: "a3", Label: "A3 Size"},
		{Value: "letter", Label: "Letter Size"},
		{Value: "legal", Label: "Legal Size"},
		{Value: "colored", Label: "Colored"},
		{Value: "recycled", Label: "Recycled"},
		{Value: "glossy", Label: "Glossy"},
		{Value: "matte", Label: "Matte"},
		{Value: "lined", Label: "Lined"},
		{Value: "unlined", Label: "Unlined"},
		{Value: "grid", Label: "Grid"},
		{Value: "dot_grid", Label: "Dot Grid"},
	},
	"filing": {
		{Value: "letter_size", Label: "Letter Size"},
		{Value: "legal_size", Label: "Legal Size"},
		{Value: "a4_size", Label: "A4 Size"},
		{Value: "expanding", Label: "Expanding"},
		{Value: "hanging", Label: "Hanging"},
		{Value: "pocket", Label: "Pocket"},
		{Value: "tabbed", Label: "Tabbed"},
		{Value: "colored", Label: "Colored"},
		{Value: "transparent", Label: "Transparent"},
		{Value: "reinforced", Label: "Reinforced"},
	},
	"desk": {
		{Value: "desktop", Label: "Desktop"},
		{Value: "handheld", Label: "Handheld"},
		{Value: "electric", Label: "Electric"},
		{Value: "manual", Label: "Manual"},
		{Value: "heavy_duty", Label: "Heavy Duty"},
		{Value: "mini", Label: "Mini"},
		{Value: "standard", Label: "Standard"},
		{Value: "premium", Label: "Premium"},
		{Value: "ergonomic", Label: "Ergonomic"},
	},
	CategoryTech: {
		{Value: "usb_2", Label: "USB 2.0"},
		{Value: "usb_3", Label: "USB 3.0"},
		{Value: "usb_c", Label: "USB-C"},
		{Value: "wireless", Label: "Wireless"},
		{Value: "wired", Label: "Wired"},
		{Value: "bluetooth", Label: "Bluetooth"},
		{Value: "rechargeable", Label: "Rechargeable"},
		{Value: "disposable", Label: "Disposable"},
		{Value: "high_capacity", Label: "High Capacity"},
		{Value: "standard_capacity", Label: "Standard Capacity"},
	},
	"other": {
		{Value: "concentrated", Label: "Concentrated"},
		{Value: "ready_to_use", Label: "Ready to Use"},
		{Value: "eco_friendly", Label: "Eco-Friendly"},
		{Value: "industrial", Label: "Industrial"},
		{Value: "office_grade", Label: "Office Grade"},
		{Value: "premium_quality", Label: "Premium Quality"},
		{Value: "budget", Label: "Budget"},
		{Value: "custom", Label: "Custom"},
	},
}

// Categories returns the selectable categories. The retired tech category
// is not offered for new items.
func Categories() []Option {
	return clone(categories)
}

// Subcategories returns every category's subcategories, tech included
func Subcategories() map[string][]Option {
	out := make(map[string][]Option, len(subcategories))
	for k, v := range subcategories {
		out[k] = clone(v)
	}
	return out
}

// SubcategoriesOf returns the subcategories for one category, or nil
func SubcategoriesOf(category string) []Option {
	return clone(subcategories[category])
}

// Variations returns the variations for one category, or nil
func Variations(category string) []Option {
	return clone(variations[category])
}

// IsCategory reports whether category has a lookup table, tech included
func IsCategory(category string) bool {
	_, ok := subcategories[category]
	return ok
}

// CategoryLabel returns the display label, or the raw value for unknown
// and legacy categories
func CategoryLabel(category string) string {
	return labelOf(categories, category)
}

// SubcategoryLabel returns the display label of a subcategory within its
// category, or the raw value when either is unknown.
func SubcategoryLabel(category, subcategory string) string {
	if category == "" || subcategory == "" {
		return subcategory
	}
	return labelOf(subcategories[category], subcategory)
}

// VariationLabel returns the display label of a variation, or the raw value
func VariationLabel(category, variation string) string {
	return labelOf(variations[category], variation)
}

func labelOf(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func clone(options []Option) []Option {
	if options == nil {
		return nil
	}
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
