package service

import (
	"context"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/domain/policy"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/datatypes"
)

// DefaultLeadService is the sales pipeline board. Leads are edited freely
// here and none of these edits reach the linked request.
type DefaultLeadService struct {
	Store    Store
	Validate *validator.Validate
	Policy   *policy.LeadPolicy
}

func NewLeadService(store Store, validate *validator.Validate) *DefaultLeadService {
	return &DefaultLeadService{
		Store:    store,
		Validate: validate,
		Policy:   policy.NewLeadPolicy(),
	}
}

func (s *DefaultLeadService) ListLeads(ctx context.Context, actor *entity.Actor, query *contract.ListLeadsQuery) ([]*contract.LeadResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManage(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(query)
	if valerr := s.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	leads, err := s.Store.WithContext(ctx).Leads().FindAll(entity.LeadStage(query.Stage))
	if err != nil {
		return nil, storageError("fetch leads", err)
	}

	resp := make([]*contract.LeadResponse, len(leads))
	for i, lead := range leads {
		resp[i] = toLeadResponse(lead)
	}
	return resp, nil
}

func (s *DefaultLeadService) GetLead(ctx context.Context, actor *entity.Actor, id int64) (*contract.LeadResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManage(actor); perr != nil {
		return nil, perr
	}

	lead, err := s.Store.WithContext(ctx).Leads().FindByID(id)
	if err != nil {
		return nil, storageError("fetch lead", err)
	}

	if lead == nil {
		return nil, apierror.LeadNotFoundError
	}
	return toLeadResponse(lead), nil
}

// CreateLead adds a lead that did not come in through a request.
func (s *DefaultLeadService) CreateLead(ctx context.Context, actor *entity.Actor, req *contract.CreateLeadRequest) (*contract.LeadResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManage(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	store := s.Store.WithContext(ctx)
	if req.ClientID != nil {
		client, err := store.Catalog().FindClient(*req.ClientID)
		if err != nil {
			return nil, storageError("fetch client", err)
		}

		if client == nil {
			return nil, apierror.ClientNotFoundError
		}
	}

	stage := entity.StageNewRequest
	if req.Stage != "" {
		stage = entity.LeadStage(req.Stage)
	}

	materials := req.Materials
	if materials == nil {
		materials = []string{}
	}

	now := utils.NowUTC()
	lead := &entity.Lead{
		ClientID:          req.ClientID,
		Stage:             stage,
		Source:            entity.SourceManual,
		ContractorName:    req.ContractorName,
		ContractorContact: req.ContractorContact,
		ProjectName:       req.ProjectName,
		Location:          req.Location,
		Materials:         datatypes.NewJSONSlice(materials),
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue = entity.NewNullDecimal(*req.EstimatedValue)
	}

	if err := store.Leads().Save(lead); err != nil {
		return nil, storageError("save lead", err)
	}

	log.Infof("manual lead %d created by %s", lead.ID, actor.Subject)
	return toLeadResponse(lead), nil
}

func (s *DefaultLeadService) UpdateLead(ctx context.Context, actor *entity.Actor, id int64, req *contract.UpdateLeadRequest) (*contract.LeadResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanManage(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	store := s.Store.WithContext(ctx)
	lead, err := store.Leads().FindByID(id)
	if err != nil {
		return nil, storageError("fetch lead", err)
	}

	if lead == nil {
		return nil, apierror.LeadNotFoundError
	}

	if req.Stage != nil {
		lead.Stage = entity.LeadStage(*req.Stage)
	}
	if req.ContractorName != nil {
		lead.ContractorName = *req.ContractorName
	}
	if req.ContractorContact != nil {
		lead.ContractorContact = *req.ContractorContact
	}
	if req.ProjectName != nil {
		lead.ProjectName = *req.ProjectName
	}
	if req.Location != nil {
		lead.Location = *req.Location
	}
	if req.Materials != nil {
		lead.Materials = datatypes.NewJSONSlice(req.Materials)
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue = entity.NewNullDecimal(*req.EstimatedValue)
	}

	lead.UpdatedAt = utils.NowUTC()
	if err = store.Leads().Save(lead); err != nil {
		return nil, storageError("update lead", err)
	}
	return toLeadResponse(lead), nil
}

func (s *DefaultLeadService) DeleteLead(ctx context.Context, actor *entity.Actor, id int64) apierror.ErrorResponse {
	if perr := s.Policy.CanDelete(actor); perr != nil {
		return perr
	}

	store := s.Store.WithContext(ctx)
	lead, err := store.Leads().FindByID(id)
	if err != nil {
		return storageError("fetch lead", err)
	}

	if lead == nil {
		return apierror.LeadNotFoundError
	}

	if err = store.Leads().Delete(lead); err != nil {
		return storageError("delete lead", err)
	}
	return nil
}

func toLeadResponse(lead *entity.Lead) *contract.LeadResponse {
	materials := []string(lead.Materials)
	if materials == nil {
		materials = []string{}
	}

	return &contract.LeadResponse{
		ID:                lead.ID,
		ClientID:          lead.ClientID,
		RequestID:         lead.RequestID,
		Stage:             string(lead.Stage),
		Source:            string(lead.Source),
		ContractorName:    lead.ContractorName,
		ContractorContact: lead.ContractorContact,
		ProjectName:       lead.ProjectName,
		Location:          lead.Location,
		Materials:         materials,
		Notes:             lead.Notes,
		EstimatedValue:    lead.EstimatedValue,
		CreatedAt:         utils.FormatEpoch(lead.CreatedAt),
		UpdatedAt:         utils.FormatEpoch(lead.UpdatedAt),
	}
}
