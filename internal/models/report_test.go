package models

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{"zero", 0, CategoryLow},
		{"low mid", 12.5, CategoryLow},
		{"low boundary inclusive", 25.0, CategoryLow},
		{"just above low boundary", 25.01, CategoryModerate},
		{"moderate mid", 40, CategoryModerate},
		{"moderate boundary inclusive", 50.0, CategoryModerate},
		{"just above moderate boundary", 50.01, CategoryHigh},
		{"high", 87.3, CategoryHigh},
		{"max", 100, CategoryHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.percent); got != tt.want {
				t.Errorf("Categorize(%v) = %q, want %q", tt.percent, got, tt.want)
			}
		})
	}
}

func TestSectionKindsOrder(t *testing.T) {
	want := []SectionKind{SectionTitle, SectionAbstract, SectionMethodology, SectionConclusions}
	if len(SectionKinds) != len(want) {
		t.Fatalf("SectionKinds has %d entries, want %d", len(SectionKinds), len(want))
	}
	for i, k := range want {
		if SectionKinds[i] != k {
			t.Errorf("SectionKinds[%d] = %q, want %q", i, SectionKinds[i], k)
		}
	}
}
