package engine

import (
	"errors"
	"testing"

	"github.com/Manar-Bakhat/bulk-product-edit-shopify-sub002/models"
)

func TestValidateCriterion(t *testing.T) {
	tests := []struct {
		name      string
		criterion FilterCriterion
		wantErr   bool
	}{
		{"title contains", FilterCriterion{FilterFieldTitle, ConditionContains, "shirt"}, false},
		{"description empty", FilterCriterion{FilterFieldDescription, ConditionEmpty, ""}, false},
		{"item id is", FilterCriterion{FilterFieldItemID, ConditionIs, "12345"}, false},
		{"empty on title", FilterCriterion{FilterFieldTitle, ConditionEmpty, ""}, true},
		{"empty on item id", FilterCriterion{FilterFieldItemID, ConditionEmpty, ""}, true},
		{"item id contains", FilterCriterion{FilterFieldItemID, ConditionContains, "123"}, true},
		{"malformed item id", FilterCriterion{FilterFieldItemID, ConditionIs, "abc123"}, true},
		{"blank value", FilterCriterion{FilterFieldTitle, ConditionContains, "   "}, true},
		{"unknown field", FilterCriterion{FilterField("vendor"), ConditionIs, "x"}, true},
		{"unknown condition", FilterCriterion{FilterFieldTitle, Condition("matches"), "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCriterion(tt.criterion)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilterCriterion) {
					t.Fatalf("expected ErrInvalidFilterCriterion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCompileQueries(t *testing.T) {
	tests := []struct {
		name      string
		criterion FilterCriterion
		wantQuery string
	}{
		{"is", FilterCriterion{FilterFieldTitle, ConditionIs, "Blue Shirt"}, `title:"Blue Shirt"`},
		{"contains", FilterCriterion{FilterFieldTitle, ConditionContains, "shirt"}, "title:*shirt*"},
		{"starts with lowers to wildcard", FilterCriterion{FilterFieldTitle, ConditionStartsWith, "blue"}, "title:*blue*"},
		{"does not contain", FilterCriterion{FilterFieldDescription, ConditionDoesNotContain, "sale"}, "-description:*sale*"},
		{"empty is unscoped", FilterCriterion{FilterFieldDescription, ConditionEmpty, ""}, ""},
		{"sanitizes wildcards", FilterCriterion{FilterFieldTitle, ConditionContains, `a*b"c`}, "title:*abc*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := Compile(tt.criterion)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if compiled.DirectLookupID != "" {
				t.Fatalf("unexpected direct lookup for %q", tt.criterion.Field)
			}
			if compiled.Query != tt.wantQuery {
				t.Fatalf("query = %q, want %q", compiled.Query, tt.wantQuery)
			}
		})
	}
}

func TestCompileItemIDBypassesSearch(t *testing.T) {
	compiled, err := Compile(FilterCriterion{FilterFieldItemID, ConditionIs, " 9876 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compiled.DirectLookupID != "9876" {
		t.Fatalf("DirectLookupID = %q, want 9876", compiled.DirectLookupID)
	}
	if compiled.Query != "" {
		t.Fatalf("expected no search query, got %q", compiled.Query)
	}
}

// Refinement may only shrink the candidate set the remote query returned,
// never grow it, and the survivors all satisfy the criterion exactly.
func TestRefineNeverGrowsCandidateSet(t *testing.T) {
	criterion := FilterCriterion{FilterFieldTitle, ConditionStartsWith, "blue"}
	compiled, err := Compile(criterion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The remote wildcard form over-matches: it would return all of these.
	candidates := []models.ItemSnapshot{
		{ID: "1", Title: "Blue Shirt"},
		{ID: "2", Title: "Navy Blue Jacket"},
		{ID: "3", Title: "BLUE jeans"},
		{ID: "4", Title: "Red Shirt"},
	}

	var refined []models.ItemSnapshot
	for _, c := range candidates {
		if compiled.Refine(c) {
			refined = append(refined, c)
		}
	}

	if len(refined) >= len(candidates) {
		t.Fatalf("refinement kept %d of %d candidates, expected a strict subset", len(refined), len(candidates))
	}
	for _, item := range refined {
		if !Matches(item.Title, criterion.Condition, criterion.Value) {
			t.Fatalf("refined candidate %q does not satisfy the criterion", item.Title)
		}
	}
	if len(refined) != 2 {
		t.Fatalf("expected items 1 and 3 to survive, got %d survivors", len(refined))
	}
}
