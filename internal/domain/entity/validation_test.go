package entity_test

import (
	"strings"
	"testing"

	"fork-kitchen/internal/domain/entity"
)

func TestValidateLocale(t *testing.T) {
	tests := []struct {
		locale  string
		wantErr bool
	}{
		{"en", false},
		{"ja", false},
		{"pt-BR", false},
		{"", true},
		{"EN", true},
		{"english", true},
		{"pt-br", true},
	}

	for _, tt := range tests {
		err := entity.ValidateLocale(tt.locale)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLocale(%q) err=%v, wantErr=%v", tt.locale, err, tt.wantErr)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if err := entity.ValidateTitle("Beef bourguignon"); err != nil {
		t.Fatalf("valid title rejected: %v", err)
	}
	if err := entity.ValidateTitle(""); err == nil {
		t.Fatal("empty title accepted")
	}
	if err := entity.ValidateTitle(strings.Repeat("x", entity.MaxTitleLength+1)); err == nil {
		t.Fatal("overlong title accepted")
	}
}

func TestValidateDescription(t *testing.T) {
	if err := entity.ValidateDescription(""); err != nil {
		t.Fatalf("empty description rejected: %v", err)
	}
	if err := entity.ValidateDescription(strings.Repeat("x", entity.MaxDescriptionLength+1)); err == nil {
		t.Fatal("overlong description accepted")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := entity.NormalizeTags([]string{" #Vegan ", "vegan", "#時短", "", "#", "Quick-Meal"})
	want := []string{"vegan", "時短", "quick-meal"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeTags = %v, want %v", got, want)
		}
	}
	if entity.NormalizeTags(nil) != nil {
		t.Fatal("nil input must stay nil")
	}
}

func TestValidateTags(t *testing.T) {
	if err := entity.ValidateTags([]string{"vegan", "時短", "one_pot"}); err != nil {
		t.Fatalf("valid tags rejected: %v", err)
	}
	if err := entity.ValidateTags([]string{strings.Repeat("x", entity.MaxTagLength+1)}); err == nil {
		t.Fatal("overlong tag accepted")
	}
	if err := entity.ValidateTags([]string{"has space"}); err == nil {
		t.Fatal("tag with whitespace accepted")
	}
	many := make([]string, entity.MaxTagsPerRecipe+1)
	for i := range many {
		many[i] = "t" + strings.Repeat("a", i+1)
	}
	if err := entity.ValidateTags(many); err == nil {
		t.Fatal("too many tags accepted")
	}
}
