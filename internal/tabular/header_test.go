package tabular

import "testing"

func TestHasHeader(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want bool
	}{
		{"names over numbers", "name,age\nJohn,30\nJane,25", true},
		{"all numbers", "1,2\n3,4", false},
		{"single row", "1,2", true},
		{"snake case", "first_name,last_name\nJohn,Smith", true},
		{"pascal case", "FirstName,Age\nJohn,30", true},
		{"plain text rows", "John Smith,New York\nJane Doe,Boston", false},
		{"currency column", "item,price\nwidget,$1,000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasHeader(Parse(tt.csv)); got != tt.want {
				t.Errorf("HasHeader(%q) = %v (score %d), want %v", tt.csv, got, HeaderScore(Parse(tt.csv)), tt.want)
			}
		})
	}
}

func TestHeaderScore(t *testing.T) {
	rows := Parse("name,age\nJohn,30")
	if got := HeaderScore(rows); got != 6 {
		t.Errorf("HeaderScore = %d, want 6", got)
	}
	if got := HeaderScore(Parse("1,2\n3,4")); got != 1 {
		t.Errorf("HeaderScore = %d, want 1", got)
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"30", true},
		{" 3.5 ", true},
		{"$1,000", true},
		{"45%", true},
		{"-2e3", true},
		{"0x1F", true},
		{"Infinity", true},
		{"", false},
		{"   ", false},
		{"$", false},
		{"12px", false},
		{"abc", false},
		{"NaN", false},
		{"1_000", false},
	}
	for _, tt := range tests {
		if got := IsNumeric(tt.in); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
