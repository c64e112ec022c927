package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils/apierror"
)

func TestCreateRequest(t *testing.T) {
	env := newTestEnv(t)
	resp := env.createRequest(t)

	if resp.Number != "SOMVI-RFQ-0001" {
		t.Errorf("expected first number SOMVI-RFQ-0001, got %s", resp.Number)
	}
	if resp.Status != string(entity.StatusPending) || resp.Version != 1 {
		t.Errorf("expected pending version 1, got %s version %d", resp.Status, resp.Version)
	}
	if resp.TotalAmount.Valid {
		t.Errorf("expected no total before quoting, got %s", resp.TotalAmount.Decimal)
	}

	if len(resp.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(resp.Lines))
	}
	cement, rebar := resp.Lines[0], resp.Lines[1]
	if cement.MaterialName != "Cement" || cement.Unit != "bag" {
		t.Errorf("expected catalog snapshot, got %s/%s", cement.MaterialName, cement.Unit)
	}
	if !cement.MarketPrice.Valid || !cement.MarketPrice.Decimal.Equal(dec("12.5")) {
		t.Errorf("expected market price 12.5, got %v", cement.MarketPrice)
	}
	if rebar.MaterialID != nil || rebar.MaterialName != "Rebar 12mm" || rebar.MarketPrice.Valid {
		t.Errorf("unexpected free-text line: %+v", rebar)
	}
	for _, line := range resp.Lines {
		if line.PriceVersion != 1 || line.SupplierPrices != nil {
			t.Errorf("expected unquoted line at version 1, got %+v", line)
		}
	}

	leads := env.leadsOf(t, resp.ID)
	if len(leads) != 1 {
		t.Fatalf("expected exactly one lead, got %d", len(leads))
	}
	lead := leads[0]
	if lead.Source != entity.SourceFromRequest || lead.Stage != entity.StageNewRequest {
		t.Errorf("unexpected lead source/stage: %s/%s", lead.Source, lead.Stage)
	}
	if lead.ContractorName != env.client.Name || lead.ContractorContact != env.client.Contact {
		t.Errorf("expected contractor copied from client, got %s/%s", lead.ContractorName, lead.ContractorContact)
	}
	if len(lead.Materials) != 2 || lead.Materials[0] != "Cement" || lead.Materials[1] != "Rebar 12mm" {
		t.Errorf("expected material names only, got %v", lead.Materials)
	}
	if lead.Notes != "Auto-created from request SOMVI-RFQ-0001" {
		t.Errorf("unexpected lead note: %q", lead.Notes)
	}
	if lead.EstimatedValue.Valid {
		t.Errorf("expected no estimated value yet")
	}
}

func TestCreateRequestNumbering(t *testing.T) {
	env := newTestEnv(t)

	for _, want := range []string{"SOMVI-RFQ-0001", "SOMVI-RFQ-0002", "SOMVI-RFQ-0003"} {
		if got := env.createRequest(t).Number; got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestCreateRequestContinuesLegacyNumbers(t *testing.T) {
	env := newTestEnv(t)

	legacy := &entity.Request{Number: "SOMVI-RFQ-0041", ClientID: env.client.ID, ProjectName: "Old", Status: entity.StatusCompleted, Version: 1}
	if err := env.db.Create(legacy).Error; err != nil {
		t.Fatalf("failed to seed legacy request: %v", err)
	}

	if got := env.createRequest(t).Number; got != "SOMVI-RFQ-0042" {
		t.Errorf("expected SOMVI-RFQ-0042, got %s", got)
	}
}

func TestCreateRequestConcurrentNumbersAreUnique(t *testing.T) {
	env := newTestEnv(t)

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := env.requests.CreateRequest(context.Background(), &contract.CreateRequestRequest{
				ClientID:    env.client.ID,
				ProjectName: "Parallel",
				Lines:       []*contract.LineRequest{{MaterialName: "Gravel", Quantity: 1}},
			})
			if err != nil {
				t.Errorf("CreateRequest: %v", err)
				return
			}

			mu.Lock()
			numbers[resp.Number] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(numbers) != workers {
		t.Errorf("expected %d unique numbers, got %d", workers, len(numbers))
	}
	if !numbers["SOMVI-RFQ-0010"] {
		t.Errorf("expected numbers to be contiguous up to SOMVI-RFQ-0010, got %v", numbers)
	}
}

func TestCreateRequestRejects(t *testing.T) {
	env := newTestEnv(t)
	unknown := int64(999)
	inactive := &entity.Material{Name: "Old tiles", Active: true}
	if err := env.db.Create(inactive).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := env.db.Model(inactive).Update("active", false).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		name string
		req  *contract.CreateRequestRequest
	}{
		{"unknown client", &contract.CreateRequestRequest{ClientID: 999, ProjectName: "X1", Lines: []*contract.LineRequest{{MaterialName: "Sand", Quantity: 1}}}},
		{"unknown material", &contract.CreateRequestRequest{ClientID: env.client.ID, ProjectName: "X1", Lines: []*contract.LineRequest{{MaterialID: &unknown, Quantity: 1}}}},
		{"inactive material", &contract.CreateRequestRequest{ClientID: env.client.ID, ProjectName: "X1", Lines: []*contract.LineRequest{{MaterialID: &inactive.ID, Quantity: 1}}}},
		{"no lines", &contract.CreateRequestRequest{ClientID: env.client.ID, ProjectName: "X1"}},
		{"zero quantity", &contract.CreateRequestRequest{ClientID: env.client.ID, ProjectName: "X1", Lines: []*contract.LineRequest{{MaterialName: "Sand"}}}},
		{"nameless line", &contract.CreateRequestRequest{ClientID: env.client.ID, ProjectName: "X1", Lines: []*contract.LineRequest{{Quantity: 3}}}},
		{"blank project", &contract.CreateRequestRequest{ClientID: env.client.ID, ProjectName: "   ", Lines: []*contract.LineRequest{{MaterialName: "Sand", Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.requests.CreateRequest(context.Background(), tt.req)
			if err == nil || err.Code() != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}

	if n := env.count(t, &entity.Request{}); n != 0 {
		t.Errorf("expected no requests to be written, got %d", n)
	}
	if n := env.count(t, &entity.Lead{}); n != 0 {
		t.Errorf("expected no leads to be written, got %d", n)
	}
}

func TestGetRequestNotFound(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.requests.GetRequest(context.Background(), 42); err != apierror.RequestNotFoundError {
		t.Fatalf("expected RequestNotFoundError, got %v", err)
	}
}

func TestListRequests(t *testing.T) {
	env := newTestEnv(t)
	first := env.createRequest(t)
	env.createRequest(t)

	status := string(entity.StatusCompleted)
	if _, err := env.requests.UpdateRequest(context.Background(), admin, first.ID, &contract.UpdateRequestRequest{Status: &status}); err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}

	all, err := env.requests.ListRequests(context.Background(), viewer, &contract.ListRequestsQuery{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 requests, got %d (%v)", len(all), err)
	}

	completed, err := env.requests.ListRequests(context.Background(), viewer, &contract.ListRequestsQuery{Status: status})
	if err != nil || len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("expected only the completed request, got %v (%v)", completed, err)
	}

	if _, err = env.requests.ListRequests(context.Background(), &entity.Actor{Subject: "nobody"}, &contract.ListRequestsQuery{}); err == nil || err.Code() != http.StatusForbidden {
		t.Errorf("expected 403 without permission, got %v", err)
	}
}

func TestUpdateRequestStatusSyncsLead(t *testing.T) {
	tests := []struct {
		status string
		want   entity.LeadStage
	}{
		{"pending", entity.StageNewRequest},
		{"quoted", entity.StageContractorReview},
		{"completed", entity.StageCompleted},
		{"on_hold", entity.StageRFQSent},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			env := newTestEnv(t)
			req := env.createRequest(t)
			if _, err := env.quotes.SubmitQuote(context.Background(), admin, req.ID, quoteAll(req, env.suppliers[0].ID, "10")); err != nil {
				t.Fatalf("SubmitQuote: %v", err)
			}

			// Start from a stage no status maps to, so every change is visible.
			lead := env.leadsOf(t, req.ID)[0]
			lead.Stage = entity.StageRFQSent
			if err := env.store.Leads().Save(lead); err != nil {
				t.Fatalf("Save: %v", err)
			}

			status := tt.status
			resp, err := env.requests.UpdateRequest(context.Background(), admin, req.ID, &contract.UpdateRequestRequest{Status: &status})
			if err != nil {
				t.Fatalf("UpdateRequest: %v", err)
			}
			if resp.Status != tt.status || resp.LastEditedAt == nil {
				t.Errorf("expected status %s with an edit stamp, got %s", tt.status, resp.Status)
			}

			if got := env.leadsOf(t, req.ID)[0].Stage; got != tt.want {
				t.Errorf("expected lead stage %s, got %s", tt.want, got)
			}
		})
	}
}

func TestUpdateRequestQuotedNeedsPricedLines(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)

	status := string(entity.StatusQuoted)
	_, err := env.requests.UpdateRequest(context.Background(), admin, req.ID, &contract.UpdateRequestRequest{Status: &status})
	if err != apierror.MissingPrimarySupplierError {
		t.Fatalf("expected MissingPrimarySupplierError, got %v", err)
	}

	stored, err := env.requests.GetRequest(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if stored.Status != string(entity.StatusPending) || stored.LastEditedAt != nil {
		t.Errorf("expected the request untouched, got %s", stored.Status)
	}
	if got := env.leadsOf(t, req.ID)[0].Stage; got != entity.StageNewRequest {
		t.Errorf("expected lead to stay new_request, got %s", got)
	}
}

func TestUpdateRequestRepeatedStatusIsNoop(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)
	if _, err := env.quotes.SubmitQuote(context.Background(), admin, req.ID, quoteAll(req, env.suppliers[0].ID, "10")); err != nil {
		t.Fatalf("SubmitQuote: %v", err)
	}

	status := string(entity.StatusQuoted)
	edit := &contract.UpdateRequestRequest{Status: &status}
	if _, err := env.requests.UpdateRequest(context.Background(), admin, req.ID, edit); err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	first := env.leadsOf(t, req.ID)[0]
	if first.Stage != entity.StageContractorReview {
		t.Fatalf("expected contractor_review after the first edit, got %s", first.Stage)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := env.requests.UpdateRequest(context.Background(), admin, req.ID, edit); err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	second := env.leadsOf(t, req.ID)[0]
	if second.Stage != first.Stage || second.UpdatedAt != first.UpdatedAt {
		t.Errorf("expected the repeated edit to leave the lead alone, got %s at %d (was %d)", second.Stage, second.UpdatedAt, first.UpdatedAt)
	}
}

func TestUpdateRequestWithoutStatusLeavesLead(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)

	lead := env.leadsOf(t, req.ID)[0]
	lead.Stage = entity.StageInDelivery
	if err := env.store.Leads().Save(lead); err != nil {
		t.Fatalf("Save: %v", err)
	}

	notes := "Call before delivery"
	resp, err := env.requests.UpdateRequest(context.Background(), admin, req.ID, &contract.UpdateRequestRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}
	if resp.Notes != notes || resp.Status != string(entity.StatusPending) {
		t.Errorf("unexpected request after edit: %+v", resp)
	}
	if got := env.leadsOf(t, req.ID)[0].Stage; got != entity.StageInDelivery {
		t.Errorf("expected lead to stay in_delivery, got %s", got)
	}
}

func TestRefreshPrices(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)

	if _, err := env.quotes.SubmitQuote(context.Background(), admin, req.ID, quoteAll(req, env.suppliers[0].ID, "9")); err != nil {
		t.Fatalf("SubmitQuote: %v", err)
	}

	env.cement.MinPrice = entity.NewNullDecimal(dec("20"))
	env.cement.MaxPrice = entity.NewNullDecimal(dec("30"))
	if err := env.db.Save(env.cement).Error; err != nil {
		t.Fatalf("update material: %v", err)
	}

	resp, err := env.requests.RefreshPrices(context.Background(), admin, req.ID)
	if err != nil {
		t.Fatalf("RefreshPrices: %v", err)
	}

	if resp.Version != 2 || resp.Status != string(entity.StatusPending) {
		t.Errorf("expected pending version 2, got %s version %d", resp.Status, resp.Version)
	}
	if resp.LastEditedAt == nil {
		t.Errorf("expected an edit stamp")
	}
	for _, line := range resp.Lines {
		if line.PriceVersion != 2 {
			t.Errorf("expected line %d at price version 2, got %d", line.ID, line.PriceVersion)
		}
	}
	if !resp.Lines[0].MarketPrice.Decimal.Equal(dec("25")) {
		t.Errorf("expected refreshed market price 25, got %s", resp.Lines[0].MarketPrice.Decimal)
	}
	if resp.Lines[1].MarketPrice.Valid {
		t.Errorf("expected the free-text line to keep no market price")
	}

	// Refreshing is not a lead sync trigger.
	if got := env.leadsOf(t, req.ID)[0].Stage; got != entity.StageQuotesReceived {
		t.Errorf("expected lead to stay quotes_received, got %s", got)
	}

	stored, apierr := env.requests.GetRequest(context.Background(), req.ID)
	if apierr != nil || stored.Version != 2 || stored.Lines[0].PriceVersion != 2 {
		t.Errorf("expected the refresh to be persisted, got %+v (%v)", stored, apierr)
	}
}

func TestRefreshPricesKeepsPriceWithoutBand(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)

	if err := env.db.Model(env.cement).Updates(map[string]any{"min_price": nil}).Error; err != nil {
		t.Fatalf("update material: %v", err)
	}

	resp, err := env.requests.RefreshPrices(context.Background(), admin, req.ID)
	if err != nil {
		t.Fatalf("RefreshPrices: %v", err)
	}
	if !resp.Lines[0].MarketPrice.Decimal.Equal(dec("12.5")) {
		t.Errorf("expected market price to stay 12.5, got %s", resp.Lines[0].MarketPrice.Decimal)
	}
}

func TestAddLine(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)

	if _, err := env.requests.RefreshPrices(context.Background(), admin, req.ID); err != nil {
		t.Fatalf("RefreshPrices: %v", err)
	}

	sandID := env.sand.ID
	resp, err := env.requests.AddLine(context.Background(), admin, req.ID, &contract.LineRequest{MaterialID: &sandID, Quantity: 3})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	if len(resp.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(resp.Lines))
	}
	added := resp.Lines[2]
	if added.MaterialName != "Sand" || added.Unit != "m3" || added.PriceVersion != 2 {
		t.Errorf("unexpected added line: %+v", added)
	}

	if _, err = env.requests.AddLine(context.Background(), admin, 999, &contract.LineRequest{MaterialName: "Nails", Quantity: 1}); err != apierror.RequestNotFoundError {
		t.Errorf("expected RequestNotFoundError, got %v", err)
	}
}

func TestAddLineReopensQuotedRequest(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)
	if _, err := env.quotes.SubmitQuote(context.Background(), admin, req.ID, quoteAll(req, env.suppliers[0].ID, "10")); err != nil {
		t.Fatalf("SubmitQuote: %v", err)
	}

	sandID := env.sand.ID
	resp, err := env.requests.AddLine(context.Background(), admin, req.ID, &contract.LineRequest{MaterialID: &sandID, Quantity: 3})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if resp.Status != string(entity.StatusPending) {
		t.Errorf("expected the request back at pending, got %s", resp.Status)
	}
	if resp.Lines[2].SupplierPrices != nil {
		t.Errorf("expected the new line to be unquoted")
	}

	stored, err := env.requests.GetRequest(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if stored.Status != string(entity.StatusPending) {
		t.Errorf("expected stored status pending, got %s", stored.Status)
	}

	status := string(entity.StatusQuoted)
	if _, err = env.requests.UpdateRequest(context.Background(), admin, req.ID, &contract.UpdateRequestRequest{Status: &status}); err != apierror.MissingPrimarySupplierError {
		t.Errorf("expected the unpriced line to block a manual quoted edit, got %v", err)
	}
}

func TestDeleteRequest(t *testing.T) {
	env := newTestEnv(t)
	req := env.createRequest(t)
	other := env.createRequest(t)

	if _, err := env.quotes.SubmitQuote(context.Background(), admin, req.ID, quoteAll(req, env.suppliers[0].ID, "9")); err != nil {
		t.Fatalf("SubmitQuote: %v", err)
	}

	if err := env.requests.DeleteRequest(context.Background(), viewer, req.ID); err == nil || err.Code() != http.StatusForbidden {
		t.Fatalf("expected 403 for a viewer, got %v", err)
	}

	if err := env.requests.DeleteRequest(context.Background(), admin, req.ID); err != nil {
		t.Fatalf("DeleteRequest: %v", err)
	}

	if n := env.count(t, &entity.QuoteLogEntry{}); n != 0 {
		t.Errorf("expected quote log to be removed, got %d rows", n)
	}
	if n := env.count(t, &entity.Request{}); n != 1 {
		t.Errorf("expected only the other request to remain, got %d", n)
	}
	if n := env.count(t, &entity.RequestLine{}); n != int64(len(other.Lines)) {
		t.Errorf("expected only the other request's lines to remain, got %d", n)
	}
	if leads := env.leadsOf(t, other.ID); len(leads) != 1 {
		t.Errorf("expected the other lead to survive, got %d", len(leads))
	}
	if n := env.count(t, &entity.Lead{}); n != 1 {
		t.Errorf("expected one lead left, got %d", n)
	}

	if err := env.requests.DeleteRequest(context.Background(), admin, req.ID); err != apierror.RequestNotFoundError {
		t.Errorf("expected RequestNotFoundError on second delete, got %v", err)
	}
}
