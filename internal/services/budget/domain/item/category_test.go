package item

import "testing"

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Materiały wykończeniowe", CategoryMaterials},
		{"MATERIAŁ PODŁOGOWY", CategoryMaterials},
		{"farby budowlane", CategoryMaterials},
		{"Meble kuchenne", CategoryFurniture},
		{"dekoracje ścienne", CategoryFurniture},
		{"Robocizna hydraulika", CategoryLabor},
		{"ROBOCIZNA", CategoryLabor},
		{"oświetlenie", CategoryOther},
		{"", CategoryOther},
		{"   ", CategoryOther},
	}
	for _, tc := range tests {
		if got := ClassifyLabel(tc.label); got != tc.want {
			t.Fatalf("ClassifyLabel(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	got := Categories()
	want := []Category{CategoryMaterials, CategoryFurniture, CategoryLabor, CategoryOther}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
