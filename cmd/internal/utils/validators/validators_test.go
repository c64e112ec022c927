package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	Stage    string           `json:"stage" validate:"omitempty,leadstage"`
	District string           `json:"district" validate:"omitempty,district"`
	Tags     []string         `json:"tags" validate:"nodupes"`
	Fee      *decimal.Decimal `json:"fee" validate:"omitempty,gte=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidator()
	neg := decimal.NewFromInt(-1)
	pos := decimal.RequireFromString("2.5")

	tests := []struct {
		name  string
		in    sample
		field string
	}{
		{"valid", sample{Stage: "rfq_sent", District: "Hodan", Tags: []string{"a", "b"}, Fee: &pos}, ""},
		{"empty is fine", sample{}, ""},
		{"bad stage", sample{Stage: "lost"}, "stage"},
		{"bad district", sample{District: "Atlantis"}, "district"},
		{"duplicates", sample{Tags: []string{"a", "a"}}, "tags"},
		{"negative fee", sample{Fee: &neg}, "fee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&tt.in)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			verrs, ok := err.(validator.ValidationErrors)
			if !ok || len(verrs) != 1 {
				t.Fatalf("expected one validation error, got %v", err)
			}
			if verrs[0].Field() != tt.field {
				t.Errorf("expected error on %q, got %q", tt.field, verrs[0].Field())
			}
		})
	}
}
