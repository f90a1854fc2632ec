package item

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category buckets product items for budget breakdowns. The category is
// stored on the item; it is display metadata and never decides planned or
// spent totals.
type Category string

const (
	CategoryMaterials Category = "materials"
	CategoryFurniture Category = "furniture"
	CategoryLabor     Category = "labor"
	CategoryOther     Category = "other"
)

// Categories lists all product categories in display order.
func Categories() []Category {
	return []Category{CategoryMaterials, CategoryFurniture, CategoryLabor, CategoryOther}
}

// labelKeywords maps folded substring keywords to categories. The keywords
// come from the Polish labels used by imported spreadsheets.
var labelKeywords = []struct {
	keyword  string
	category Category
}{
	{"materiał", CategoryMaterials},
	{"budowlan", CategoryMaterials},
	{"mebl", CategoryFurniture},
	{"dekorac", CategoryFurniture},
	{"robociz", CategoryLabor},
}

// ClassifyLabel maps a free-text category label to a Category using
// case-insensitive substring matching. It exists as an import heuristic for
// legacy labeled data; items created through the API carry an explicit
// Category and never pass through here.
func ClassifyLabel(label string) Category {
	// A Caser is stateful, so each call folds with its own instance.
	folder := cases.Fold()
	folded := folder.String(strings.TrimSpace(label))
	if folded == "" {
		return CategoryOther
	}
	for _, entry := range labelKeywords {
		if strings.Contains(folded, folder.String(entry.keyword)) {
			return entry.category
		}
	}
	return CategoryOther
}
