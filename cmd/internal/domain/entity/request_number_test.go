package entity

import "testing"

func TestNextRequestNumber(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{"first request", "", "SOMVI-RFQ-0001"},
		{"increments", "SOMVI-RFQ-0007", "SOMVI-RFQ-0008"},
		{"carries", "SOMVI-RFQ-0099", "SOMVI-RFQ-0100"},
		{"widens past four digits", "SOMVI-RFQ-9999", "SOMVI-RFQ-10000"},
		{"foreign prefix restarts", "ACME-RFQ-0042", "SOMVI-RFQ-0001"},
		{"garbage restarts", "SOMVI-RFQ-abc", "SOMVI-RFQ-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRequestNumber("SOMVI", tt.last); got != tt.want {
				t.Errorf("NextRequestNumber(%q) = %q, want %q", tt.last, got, tt.want)
			}
		})
	}
}

func TestParseRequestNumber(t *testing.T) {
	n, ok := ParseRequestNumber("SOMVI", "SOMVI-RFQ-0123")
	if !ok || n != 123 {
		t.Fatalf("expected 123, got %d (ok=%v)", n, ok)
	}

	if _, ok := ParseRequestNumber("SOMVI", "SOMVI-RFQ-"); ok {
		t.Errorf("expected empty suffix to be rejected")
	}
	if _, ok := ParseRequestNumber("SOMVI", "SOMVI-RFQ--1"); ok {
		t.Errorf("expected negative suffix to be rejected")
	}
}
