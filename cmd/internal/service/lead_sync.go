package service

import (
	"fmt"

	"rfqengine/cmd/internal/domain/entity"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LeadSynchronizer keeps the pipeline leads in step with their request.
// It only ever runs inside the transaction that changed the request, and it
// never writes back to the request.
type LeadSynchronizer struct{}

// OnRequestCreated creates the single lead of a new request.
func (LeadSynchronizer) OnRequestCreated(tx Store, req *entity.Request, client *entity.Client, now int64) (*entity.Lead, error) {
	materials := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		materials = append(materials, line.MaterialName)
	}

	clientID, requestID := req.ClientID, req.ID
	lead := &entity.Lead{
		ClientID:          &clientID,
		RequestID:         &requestID,
		Stage:             entity.StageNewRequest,
		Source:            entity.SourceFromRequest,
		ContractorName:    client.Name,
		ContractorContact: client.Contact,
		ProjectName:       req.ProjectName,
		Location:          string(client.District),
		Materials:         datatypes.NewJSONSlice(materials),
		Notes:             fmt.Sprintf("Auto-created from request %s", req.Number),
		EstimatedValue:    req.TotalAmount,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := tx.Leads().Save(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// OnStatusChanged moves the request's leads to the stage matching a manual
// status edit. Statuses without a stage leave the leads alone.
func (LeadSynchronizer) OnStatusChanged(tx Store, requestID int64, status entity.RequestStatus, now int64) error {
	stage, ok := entity.StageForStatus(status)
	if !ok {
		return nil
	}

	leads, err := tx.Leads().FindByRequest(requestID)
	if err != nil {
		return err
	}

	for _, lead := range leads {
		if lead.Stage == stage {
			continue
		}

		lead.Stage = stage
		lead.UpdatedAt = now
		if err = tx.Leads().Save(lead); err != nil {
			return err
		}
		log.Debugf("lead %d moved to %s after request %d status edit", lead.ID, stage, requestID)
	}
	return nil
}

// OnQuoteSubmitted advances the request's leads once a quotation is committed.
func (LeadSynchronizer) OnQuoteSubmitted(tx Store, requestID int64, total decimal.Decimal, now int64) error {
	leads, err := tx.Leads().FindByRequest(requestID)
	if err != nil {
		return err
	}

	for _, lead := range leads {
		lead.Stage = entity.StageQuotesReceived
		lead.EstimatedValue = entity.NewNullDecimal(total)
		lead.UpdatedAt = now
		if err = tx.Leads().Save(lead); err != nil {
			return err
		}
	}
	return nil
}
