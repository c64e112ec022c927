package service

import (
	"context"
	"net/http"
	"testing"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils/apierror"
)

// seedOffers gives cement one offer per supplier, cheapest furthest from Hodan,
// plus a cheaper offer from an inactive supplier.
func (e *testEnv) seedOffers(t *testing.T) *entity.Supplier {
	t.Helper()

	inactive := &entity.Supplier{Name: "Closed Yard", District: "Hodan", Status: entity.SupplierInactive}
	if err := e.db.Create(inactive).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	offers := []*entity.MaterialSupplier{
		{MaterialID: e.cement.ID, SupplierID: e.suppliers[0].ID, SupplierPrice: dec("12")},
		{MaterialID: e.cement.ID, SupplierID: e.suppliers[1].ID, SupplierPrice: dec("11")},
		{MaterialID: e.cement.ID, SupplierID: e.suppliers[2].ID, SupplierPrice: dec("10")},
		{MaterialID: e.cement.ID, SupplierID: inactive.ID, SupplierPrice: dec("5")},
	}
	if err := e.db.Create(&offers).Error; err != nil {
		t.Fatalf("seed offers: %v", err)
	}
	return inactive
}

func TestRankSuppliers(t *testing.T) {
	env := newTestEnv(t)
	env.seedOffers(t)
	s := env.suppliers

	tests := []struct {
		name     string
		query    *contract.RankSuppliersQuery
		district string
		want     []int64
	}{
		{"client district", &contract.RankSuppliersQuery{ClientID: env.client.ID}, "Hodan", []int64{s[0].ID, s[1].ID, s[2].ID}},
		{"district parameter", &contract.RankSuppliersQuery{District: "Daynile"}, "Daynile", []int64{s[2].ID, s[0].ID, s[1].ID}},
		{"client wins over parameter", &contract.RankSuppliersQuery{ClientID: env.client.ID, District: "Daynile"}, "Hodan", []int64{s[0].ID, s[1].ID, s[2].ID}},
		{"no district", &contract.RankSuppliersQuery{}, "", []int64{s[2].ID, s[1].ID, s[0].ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.catalog.RankSuppliers(context.Background(), viewer, env.cement.ID, tt.query)
			if err != nil {
				t.Fatalf("RankSuppliers: %v", err)
			}

			if resp.ClientDistrict != tt.district {
				t.Errorf("expected district %q, got %q", tt.district, resp.ClientDistrict)
			}
			if len(resp.Suppliers) != len(tt.want) {
				t.Fatalf("expected %d suppliers, got %d", len(tt.want), len(resp.Suppliers))
			}
			for i, id := range tt.want {
				got := resp.Suppliers[i]
				if got.SupplierID != id || got.Rank != i+1 {
					t.Errorf("position %d: expected supplier %d, got %d (rank %d)", i, id, got.SupplierID, got.Rank)
				}
			}
		})
	}
}

func TestRankSuppliersRejects(t *testing.T) {
	env := newTestEnv(t)
	env.seedOffers(t)

	tests := []struct {
		name       string
		materialID int64
		query      *contract.RankSuppliersQuery
		want       int
	}{
		{"unknown material", 999, &contract.RankSuppliersQuery{}, http.StatusNotFound},
		{"unknown client", env.cement.ID, &contract.RankSuppliersQuery{ClientID: 999}, http.StatusBadRequest},
		{"unknown district", env.cement.ID, &contract.RankSuppliersQuery{District: "Atlantis"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.RankSuppliers(context.Background(), viewer, tt.materialID, tt.query)
			if err == nil || err.Code() != tt.want {
				t.Fatalf("expected %d, got %v", tt.want, err)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.catalog.Estimate(context.Background(), viewer, env.cement.ID, &contract.EstimateQuery{SupplierPrice: "10", Commission: "1"})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"market price", resp.MarketPrice.Decimal.String(), "12.5"},
		{"platform price", resp.PlatformPrice.Decimal.String(), "11.875"},
		{"profit", resp.Profit.Decimal.String(), "2.875"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	resp, err = env.catalog.Estimate(context.Background(), viewer, env.sand.ID, &contract.EstimateQuery{SupplierPrice: "10"})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if resp.MarketPrice.Valid || resp.PlatformPrice.Valid || resp.Profit.Valid {
		t.Errorf("expected no estimate without a price band, got %+v", resp)
	}
}

func TestEstimateRejects(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		query *contract.EstimateQuery
	}{
		{"missing price", &contract.EstimateQuery{}},
		{"text price", &contract.EstimateQuery{SupplierPrice: "ten"}},
		{"negative price", &contract.EstimateQuery{SupplierPrice: "-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.Estimate(context.Background(), viewer, env.cement.ID, tt.query)
			if err == nil || err.Code() != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}

	if _, err := env.catalog.Estimate(context.Background(), viewer, 999, &contract.EstimateQuery{SupplierPrice: "1"}); err != apierror.MaterialNotFoundError {
		t.Errorf("expected MaterialNotFoundError, got %v", err)
	}
}

func TestMarkup(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.catalog.Markup(context.Background(), viewer, &contract.MarkupRequest{SupplierPrice: dec("100")})
	if err != nil {
		t.Fatalf("Markup: %v", err)
	}
	if !resp.ClientPrice.Equal(dec("115")) || resp.MarkupType != string(entity.MarkupPercentage) {
		t.Errorf("expected 115 with default percentage markup, got %s (%s)", resp.ClientPrice, resp.MarkupType)
	}

	flat := string(entity.MarkupFlat)
	resp, err = env.catalog.Markup(context.Background(), viewer, &contract.MarkupRequest{
		SupplierPrice: dec("100"),
		Markup:        decPtr("7"),
		MarkupType:    &flat,
	})
	if err != nil {
		t.Fatalf("Markup: %v", err)
	}
	if !resp.ClientPrice.Equal(dec("107")) || !resp.Profit.Equal(dec("7")) {
		t.Errorf("expected flat 107, got %s", resp.ClientPrice)
	}
}
