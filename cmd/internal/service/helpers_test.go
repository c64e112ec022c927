package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/database"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/infrastructure/lock"
	"rfqengine/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testPrefix = "SOMVI"

var (
	admin  = &entity.Actor{Subject: "admin", Permissions: entity.PermissionAdministrator}
	viewer = &entity.Actor{Subject: "viewer", Permissions: entity.PermissionViewRequests}
)

type testEnv struct {
	db       *gorm.DB
	store    Store
	requests *DefaultRequestService
	quotes   *DefaultQuoteService
	leads    *DefaultLeadService
	catalog  *DefaultCatalogService

	client    *entity.Client
	cement    *entity.Material
	sand      *entity.Material
	suppliers []*entity.Supplier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Init(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	validate := validator.New()
	validators.Register(validate)

	store := NewStore(db)
	locker := lock.NewLocalLocker(lock.Options{Wait: time.Second})

	env := &testEnv{
		db:       db,
		store:    store,
		requests: NewRequestService(store, locker, validate, testPrefix),
		quotes:   NewQuoteService(store, locker, validate),
		leads:    NewLeadService(store, validate),
		catalog:  NewCatalogService(store, validate),
	}
	env.seed(t)
	return env
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()

	e.client = &entity.Client{Name: "Abdi Builders", Contact: "+252611000000", District: "Hodan"}
	e.cement = &entity.Material{
		Name:     "Cement",
		Unit:     "bag",
		MinPrice: entity.NewNullDecimal(dec("10")),
		MaxPrice: entity.NewNullDecimal(dec("15")),
		Active:   true,
	}
	e.sand = &entity.Material{Name: "Sand", Unit: "m3", Active: true}
	e.suppliers = []*entity.Supplier{
		{Name: "Hodan Supplies", District: "Hodan"},
		{Name: "Wadajir Trading", District: "Wadajir"},
		{Name: "Daynile Depot", District: "Daynile"},
	}

	for _, v := range []any{e.client, e.cement, e.sand, &e.suppliers} {
		if err := e.db.Create(v).Error; err != nil {
			t.Fatalf("failed to seed %T: %v", v, err)
		}
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func (e *testEnv) createRequest(t *testing.T) *contract.RequestResponse {
	t.Helper()

	cementID := e.cement.ID
	resp, err := e.requests.CreateRequest(context.Background(), &contract.CreateRequestRequest{
		ClientID:    e.client.ID,
		ProjectName: "Villa in Hodan",
		Lines: []*contract.LineRequest{
			{MaterialID: &cementID, Quantity: 10},
			{MaterialName: "Rebar 12mm", Quantity: 4, Unit: "bar"},
		},
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	return resp
}

// quoteAll builds a submission giving every line the same slot 1 offer.
func quoteAll(req *contract.RequestResponse, supplierID int64, unitPrice string) *contract.SubmitQuoteRequest {
	sub := &contract.SubmitQuoteRequest{}
	for _, line := range req.Lines {
		sub.Lines = append(sub.Lines, &contract.QuoteLineRequest{
			LineID: line.ID,
			Slots: map[string]*contract.QuoteSlotRequest{
				"1": {SupplierID: supplierID, UnitPrice: dec(unitPrice)},
			},
		})
	}
	return sub
}

func (e *testEnv) leadsOf(t *testing.T, requestID int64) []*entity.Lead {
	t.Helper()

	leads, err := e.store.Leads().FindByRequest(requestID)
	if err != nil {
		t.Fatalf("FindByRequest: %v", err)
	}
	return leads
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()

	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
