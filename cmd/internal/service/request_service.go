package service

import (
	"context"
	"errors"
	"net/http"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/database/repository"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/domain/policy"
	"rfqengine/cmd/internal/domain/pricing"
	"rfqengine/cmd/internal/infrastructure/lock"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// maxNumberAttempts bounds how often creation retries after losing a
// request number race.
const maxNumberAttempts = 3

type DefaultRequestService struct {
	Store        Store
	Locker       lock.Locker
	Validate     *validator.Validate
	Policy       *policy.RequestPolicy
	Leads        LeadSynchronizer
	NumberPrefix string
}

func NewRequestService(store Store, locker lock.Locker, validate *validator.Validate, numberPrefix string) *DefaultRequestService {
	return &DefaultRequestService{
		Store:        store,
		Locker:       locker,
		Validate:     validate,
		Policy:       policy.NewRequestPolicy(),
		NumberPrefix: numberPrefix,
	}
}

func (s *DefaultRequestService) CreateRequest(ctx context.Context, req *contract.CreateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	var (
		created *entity.Request
		apierr  apierror.ErrorResponse
	)
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		created, apierr = s.createRequest(ctx, req)
		if apierr != apierror.RequestNumberConflictError {
			break
		}
		log.Warnf("request number taken, retrying (attempt %d/%d)", attempt, maxNumberAttempts)
	}

	if apierr != nil {
		return nil, apierr
	}

	log.Infof("request %s created for client %d with %d lines", created.Number, created.ClientID, len(created.Lines))
	return toRequestResponse(created), nil
}

func (s *DefaultRequestService) createRequest(ctx context.Context, req *contract.CreateRequestRequest) (*entity.Request, apierror.ErrorResponse) {
	var created *entity.Request
	apierr := inTx(ctx, s.Store, func(tx Store) apierror.ErrorResponse {
		client, err := tx.Catalog().FindClient(req.ClientID)
		if err != nil {
			return storageError("fetch client", err)
		}

		if client == nil {
			return apierror.ClientNotFoundError
		}

		materials, apierr := findLineMaterials(tx, req.Lines)
		if apierr != nil {
			return apierr
		}

		number, err := tx.Sequences().Next(entity.RequestNumberSequence, s.seedNumber(tx))
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.RequestNumberConflictError
		}

		if err != nil {
			return storageError("allocate request number", err)
		}

		now := utils.NowUTC()
		created = &entity.Request{
			Number:         entity.FormatRequestNumber(s.NumberPrefix, number),
			ClientID:       client.ID,
			ProjectName:    req.ProjectName,
			ProjectDetails: req.ProjectDetails,
			Notes:          req.Notes,
			Status:         entity.StatusPending,
			Version:        1,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		for _, lr := range req.Lines {
			created.Lines = append(created.Lines, newLine(lr, materials, created.Version, now))
		}

		err = tx.Requests().Create(created)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.RequestNumberConflictError
		}

		if err != nil {
			return storageError("save request", err)
		}

		if _, err = s.Leads.OnRequestCreated(tx, created, client, now); err != nil {
			return storageError("create lead", err)
		}
		return nil
	})
	return created, apierr
}

// seedNumber continues numbering after the newest request stored before the
// counter existed.
func (s *DefaultRequestService) seedNumber(tx Store) func() (int64, error) {
	return func() (int64, error) {
		last, err := tx.Requests().LatestNumber()
		if err != nil {
			return 0, err
		}

		n, _ := entity.ParseRequestNumber(s.NumberPrefix, last)
		return n, nil
	}
}

func (s *DefaultRequestService) GetRequest(ctx context.Context, id int64) (*contract.RequestResponse, apierror.ErrorResponse) {
	req, err := s.Store.WithContext(ctx).Requests().FindByID(id)
	if err != nil {
		return nil, storageError("fetch request", err)
	}

	if req == nil {
		return nil, apierror.RequestNotFoundError
	}
	return toRequestResponse(req), nil
}

func (s *DefaultRequestService) ListRequests(ctx context.Context, actor *entity.Actor, query *contract.ListRequestsQuery) ([]*contract.RequestResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanView(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(query)
	if valerr := s.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	requests, err := s.Store.WithContext(ctx).Requests().FindAll(repository.RequestFilter{
		Status:   query.Status,
		ClientID: query.ClientID,
	})
	if err != nil {
		return nil, storageError("fetch requests", err)
	}

	resp := make([]*contract.RequestResponse, len(requests))
	for i, req := range requests {
		resp[i] = toRequestResponse(req)
	}
	return resp, nil
}

// UpdateRequest applies a manual edit. A status edit is propagated to the
// request's leads when the status maps onto a pipeline stage. Only a request
// whose lines all carry a first supplier offer may be marked quoted.
func (s *DefaultRequestService) UpdateRequest(ctx context.Context, actor *entity.Actor, id int64, req *contract.UpdateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanUpdate(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	var updated *entity.Request
	apierr := withRequestLock(ctx, s.Locker, id, func() apierror.ErrorResponse {
		return inTx(ctx, s.Store, func(tx Store) apierror.ErrorResponse {
			current, err := tx.Requests().FindByIDForUpdate(id)
			if err != nil {
				return storageError("fetch request", err)
			}

			if current == nil {
				return apierror.RequestNotFoundError
			}

			if req.Status != nil && entity.RequestStatus(*req.Status) == entity.StatusQuoted && !current.Quotable() {
				return apierror.MissingPrimarySupplierError
			}

			if req.ProjectName != nil {
				current.ProjectName = *req.ProjectName
			}
			if req.ProjectDetails != nil {
				current.ProjectDetails = *req.ProjectDetails
			}
			if req.Notes != nil {
				current.Notes = *req.Notes
			}
			if req.Status != nil {
				current.Status = entity.RequestStatus(*req.Status)
			}

			now := utils.NowUTC()
			current.LastEditedAt = &now
			current.UpdatedAt = now
			if err = tx.Requests().Save(current); err != nil {
				return storageError("update request", err)
			}

			if req.Status != nil {
				if err = s.Leads.OnStatusChanged(tx, current.ID, current.Status, now); err != nil {
					return storageError("sync leads", err)
				}
			}

			updated = current
			return nil
		})
	})

	if apierr != nil {
		return nil, apierr
	}
	return toRequestResponse(updated), nil
}

// DeleteRequest removes a request with everything hanging off it.
func (s *DefaultRequestService) DeleteRequest(ctx context.Context, actor *entity.Actor, id int64) apierror.ErrorResponse {
	if perr := s.Policy.CanDelete(actor); perr != nil {
		return perr
	}

	var number string
	apierr := withRequestLock(ctx, s.Locker, id, func() apierror.ErrorResponse {
		return inTx(ctx, s.Store, func(tx Store) apierror.ErrorResponse {
			req, err := tx.Requests().FindByIDForUpdate(id)
			if err != nil {
				return storageError("fetch request", err)
			}

			if req == nil {
				return apierror.RequestNotFoundError
			}

			// Children first, in this exact order.
			if err = tx.QuoteLog().DeleteByRequest(id); err != nil {
				return storageError("delete quote log", err)
			}
			if err = tx.Leads().DeleteByRequest(id); err != nil {
				return storageError("delete leads", err)
			}
			if err = tx.Lines().DeleteByRequest(id); err != nil {
				return storageError("delete request lines", err)
			}
			if err = tx.Requests().Delete(id); err != nil {
				return storageError("delete request", err)
			}

			number = req.Number
			return nil
		})
	})

	if apierr != nil {
		return apierr
	}

	log.Infof("request %s deleted by %s", number, actor.Subject)
	return nil
}

// AddLine appends a line stamped with the request's current price version.
// Quoted totals are left as they are until the next quotation, but a quoted
// request goes back to pending.
func (s *DefaultRequestService) AddLine(ctx context.Context, actor *entity.Actor, id int64, req *contract.LineRequest) (*contract.RequestResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanUpdate(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	var updated *entity.Request
	apierr := withRequestLock(ctx, s.Locker, id, func() apierror.ErrorResponse {
		return inTx(ctx, s.Store, func(tx Store) apierror.ErrorResponse {
			current, err := tx.Requests().FindByIDForUpdate(id)
			if err != nil {
				return storageError("fetch request", err)
			}

			if current == nil {
				return apierror.RequestNotFoundError
			}

			materials, apierr := findLineMaterials(tx, []*contract.LineRequest{req})
			if apierr != nil {
				return apierr
			}

			now := utils.NowUTC()
			line := newLine(req, materials, current.Version, now)
			line.RequestID = current.ID
			if err = tx.Lines().Create(line); err != nil {
				return storageError("save request line", err)
			}

			// The new line has no offers yet, so an existing quotation no longer covers the request.
			if current.Status == entity.StatusQuoted {
				current.Status = entity.StatusPending
				log.Infof("request %s back to pending after a line was added", current.Number)
			}

			current.Lines = append(current.Lines, line)
			current.LastEditedAt = &now
			current.UpdatedAt = now
			if err = tx.Requests().Save(current); err != nil {
				return storageError("update request", err)
			}

			updated = current
			return nil
		})
	})

	if apierr != nil {
		return nil, apierr
	}
	return toRequestResponse(updated), nil
}

// RefreshPrices re-reads the market price band of every linked material and
// starts a new price version. The request goes back to pending whatever its
// status was, since its quotation is now stale.
func (s *DefaultRequestService) RefreshPrices(ctx context.Context, actor *entity.Actor, id int64) (*contract.RequestResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanUpdate(actor); perr != nil {
		return nil, perr
	}

	var updated *entity.Request
	apierr := withRequestLock(ctx, s.Locker, id, func() apierror.ErrorResponse {
		return inTx(ctx, s.Store, func(tx Store) apierror.ErrorResponse {
			current, err := tx.Requests().FindByIDForUpdate(id)
			if err != nil {
				return storageError("fetch request", err)
			}

			if current == nil {
				return apierror.RequestNotFoundError
			}

			var ids []int64
			for _, line := range current.Lines {
				if line.MaterialID != nil {
					ids = append(ids, *line.MaterialID)
				}
			}

			materials, err := tx.Catalog().FindMaterialsInIDs(ids)
			if err != nil {
				return storageError("fetch materials", err)
			}
			byID := indexMaterials(materials)

			current.Version++
			for _, line := range current.Lines {
				if line.MaterialID != nil {
					if m, ok := byID[*line.MaterialID]; ok {
						if market, ok := pricing.MarketPrice(m.MinPrice, m.MaxPrice); ok {
							line.MarketPrice = entity.NewNullDecimal(market)
						}
					}
				}

				line.PriceVersion = current.Version
				if err = tx.Lines().Save(line); err != nil {
					return storageError("update request line", err)
				}
			}

			now := utils.NowUTC()
			current.Status = entity.StatusPending
			current.LastEditedAt = &now
			current.UpdatedAt = now
			if err = tx.Requests().Save(current); err != nil {
				return storageError("update request", err)
			}

			updated = current
			return nil
		})
	})

	if apierr != nil {
		return nil, apierr
	}

	log.Infof("request %s prices refreshed, now at version %d", updated.Number, updated.Version)
	return toRequestResponse(updated), nil
}

func (s *DefaultRequestService) ListQuoteLog(ctx context.Context, actor *entity.Actor, id int64) ([]*contract.QuoteLogEntryResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanView(actor); perr != nil {
		return nil, perr
	}

	store := s.Store.WithContext(ctx)
	req, err := store.Requests().FindByID(id)
	if err != nil {
		return nil, storageError("fetch request", err)
	}

	if req == nil {
		return nil, apierror.RequestNotFoundError
	}

	entries, err := store.QuoteLog().FindByRequest(id)
	if err != nil {
		return nil, storageError("fetch quote log", err)
	}

	resp := make([]*contract.QuoteLogEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = &contract.QuoteLogEntryResponse{
			ID:         e.ID,
			RequestID:  e.RequestID,
			LineID:     e.LineID,
			Slot:       e.Slot,
			SupplierID: e.SupplierID,
			Price:      e.Price,
			Notes:      e.Notes,
			CreatedAt:  utils.FormatEpoch(e.CreatedAt),
		}
	}
	return resp, nil
}

// findLineMaterials loads the catalog materials referenced by lines, all of
// which must exist and be active.
func findLineMaterials(tx Store, lines []*contract.LineRequest) (map[int64]*entity.Material, apierror.ErrorResponse) {
	var ids []int64
	for _, l := range lines {
		if l.MaterialID != nil {
			ids = append(ids, *l.MaterialID)
		}
	}

	materials, err := tx.Catalog().FindMaterialsInIDs(ids)
	if err != nil {
		return nil, storageError("fetch materials", err)
	}

	byID := indexMaterials(materials)
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, apierror.NewSimple(http.StatusBadRequest, "Material %d does not exist", id)
		}
		if !m.Active {
			return nil, apierror.NewSimple(http.StatusBadRequest, "Material %d is not available", id)
		}
	}
	return byID, nil
}

func indexMaterials(materials []*entity.Material) map[int64]*entity.Material {
	byID := make(map[int64]*entity.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}
	return byID
}

// newLine snapshots the catalog name, unit and market price into a new line.
func newLine(lr *contract.LineRequest, materials map[int64]*entity.Material, version int, now int64) *entity.RequestLine {
	if lr.MaterialID == nil {
		return entity.NewRequestLine(nil, lr.MaterialName, lr.Unit, lr.Quantity, version, now)
	}

	m := materials[*lr.MaterialID]
	unit := lr.Unit
	if unit == "" {
		unit = m.Unit
	}

	materialID := m.ID
	line := entity.NewRequestLine(&materialID, m.Name, unit, lr.Quantity, version, now)
	if market, ok := pricing.MarketPrice(m.MinPrice, m.MaxPrice); ok {
		line.MarketPrice = entity.NewNullDecimal(market)
	}
	return line
}

func toRequestResponse(req *entity.Request) *contract.RequestResponse {
	resp := &contract.RequestResponse{
		ID:             req.ID,
		Number:         req.Number,
		ClientID:       req.ClientID,
		ProjectName:    req.ProjectName,
		ProjectDetails: req.ProjectDetails,
		Notes:          req.Notes,
		Status:         string(req.Status),
		Subtotal:       req.Subtotal,
		DeliveryFee:    req.DeliveryFee,
		TaxAmount:      req.TaxAmount,
		Profit:         req.Profit,
		TotalAmount:    req.TotalAmount,
		Version:        req.Version,
		LastEditedAt:   utils.FormatEpochPtr(req.LastEditedAt),
		CreatedAt:      utils.FormatEpoch(req.CreatedAt),
		UpdatedAt:      utils.FormatEpoch(req.UpdatedAt),
	}

	for _, line := range req.Lines {
		resp.Lines = append(resp.Lines, toRequestLineResponse(line))
	}
	return resp
}

func toRequestLineResponse(line *entity.RequestLine) *contract.RequestLineResponse {
	prices, err := line.Prices()
	if err != nil {
		log.Warnf("request line %d has unreadable supplier prices: %v", line.ID, err)
	}

	return &contract.RequestLineResponse{
		ID:             line.ID,
		MaterialID:     line.MaterialID,
		MaterialName:   line.MaterialName,
		Quantity:       line.Quantity,
		Unit:           line.Unit,
		SupplierPrices: prices,
		MarketPrice:    line.MarketPrice,
		PriceVersion:   line.PriceVersion,
	}
}
