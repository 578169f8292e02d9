package engine

import "testing"

func TestMatchesConditions(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		condition Condition
		target    string
		want      bool
	}{
		{"is exact", "Blue Shirt", ConditionIs, "blue shirt", true},
		{"is mismatch", "Blue Shirt", ConditionIs, "blue", false},
		{"contains", "Vintage T-Shirt", ConditionContains, "shirt", true},
		{"contains case insensitive", "vintage t-SHIRT", ConditionContains, "Shirt", true},
		{"contains mismatch", "Vintage Jeans", ConditionContains, "shirt", false},
		{"does not contain", "Vintage Jeans", ConditionDoesNotContain, "shirt", true},
		{"does not contain mismatch", "Vintage Shirt", ConditionDoesNotContain, "shirt", false},
		{"starts with", "Blue Shirt", ConditionStartsWith, "blue", true},
		{"starts with mismatch", "Blue Shirt", ConditionStartsWith, "shirt", false},
		{"ends with", "Blue Shirt", ConditionEndsWith, "shirt", true},
		{"ends with mismatch", "Blue Shirt", ConditionEndsWith, "blue", false},
		{"empty on empty", "", ConditionEmpty, "", true},
		{"empty on whitespace", "   ", ConditionEmpty, "", true},
		{"empty on non-empty", "x", ConditionEmpty, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.value, tt.condition, tt.target); got != tt.want {
				t.Fatalf("Matches(%q, %q, %q) = %v, want %v", tt.value, tt.condition, tt.target, got, tt.want)
			}
		})
	}
}

// A value matching "contains" must also be excluded by "does_not_contain"
// with the same target, for any casing.
func TestMatchesContainsComplement(t *testing.T) {
	values := []string{"Shirt", "red shirt", "SHIRTDRESS", "jeans", ""}
	for _, v := range values {
		contains := Matches(v, ConditionContains, "Shirt")
		excluded := Matches(v, ConditionDoesNotContain, "Shirt")
		if contains == excluded {
			t.Fatalf("value %q: contains=%v and does_not_contain=%v must be complements", v, contains, excluded)
		}
	}
}

func TestMatchesUnknownConditionFailsOpen(t *testing.T) {
	if !Matches("anything", Condition("bogus"), "x") {
		t.Fatal("unknown condition should match everything")
	}
}
