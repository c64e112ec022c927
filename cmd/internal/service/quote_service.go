package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/domain/policy"
	"rfqengine/cmd/internal/domain/pricing"
	"rfqengine/cmd/internal/infrastructure/lock"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type DefaultQuoteService struct {
	Store    Store
	Locker   lock.Locker
	Validate *validator.Validate
	Policy   *policy.RequestPolicy
	Leads    LeadSynchronizer
}

func NewQuoteService(store Store, locker lock.Locker, validate *validator.Validate) *DefaultQuoteService {
	return &DefaultQuoteService{
		Store:    store,
		Locker:   locker,
		Validate: validate,
		Policy:   policy.NewRequestPolicy(),
	}
}

// quotedLine is a validated line of a submission. slots is indexed by
// position, index 0 is unused.
type quotedLine struct {
	line  *entity.RequestLine
	slots [entity.MaxSupplierSlots + 1]*contract.QuoteSlotRequest
	show  int
}

type quoteTotals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	TaxAmount   decimal.Decimal
	Profit      decimal.Decimal
	Total       decimal.Decimal
}

// SubmitQuote commits a full quotation for a request. Either the whole
// quotation is stored, lead updates included, or nothing changes at all.
func (s *DefaultQuoteService) SubmitQuote(ctx context.Context, actor *entity.Actor, requestID int64, req *contract.SubmitQuoteRequest) (*contract.RequestResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanSubmitQuote(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	var (
		quoted  *entity.Request
		entries int
	)
	apierr := withRequestLock(ctx, s.Locker, requestID, func() apierror.ErrorResponse {
		return inTx(ctx, s.Store, func(tx Store) apierror.ErrorResponse {
			current, err := tx.Requests().FindByIDForUpdate(requestID)
			if err != nil {
				return storageError("fetch request", err)
			}

			if current == nil {
				return apierror.RequestNotFoundError
			}

			lines, apierr := planQuote(current.Lines, req)
			if apierr != nil {
				return apierr
			}

			if apierr = checkSuppliers(tx, lines); apierr != nil {
				return apierr
			}

			settings, err := tx.Catalog().FindSettings()
			if err != nil {
				return storageError("fetch settings", err)
			}

			now := utils.NowUTC()
			offers := make([]*entity.QuoteLogEntry, 0, len(lines)*entity.MaxSupplierSlots)
			subtotal := decimal.Zero

			for _, ql := range lines {
				prices := &entity.SupplierPrices{SuppliersToShow: ql.show}
				quantity := decimal.NewFromInt(ql.line.Quantity)

				for n := 1; n <= entity.MaxSupplierSlots; n++ {
					slot := ql.slots[n]
					if slot == nil {
						continue
					}

					total := slot.UnitPrice.Mul(quantity)
					prices.SetSlot(n, &entity.SupplierSlot{
						SupplierID: slot.SupplierID,
						UnitPrice:  slot.UnitPrice,
						TotalPrice: total,
					})
					if n == 1 {
						subtotal = subtotal.Add(total)
					}

					offers = append(offers, &entity.QuoteLogEntry{
						RequestID:  current.ID,
						LineID:     ql.line.ID,
						Slot:       n,
						SupplierID: slot.SupplierID,
						Price:      slot.UnitPrice,
						Notes:      fmt.Sprintf("Supplier %d price for line %d", n, ql.line.ID),
						CreatedAt:  now,
					})
				}

				if err = ql.line.SetPrices(prices); err != nil {
					return storageError("encode supplier prices", err)
				}
				if err = tx.Lines().Save(ql.line); err != nil {
					return storageError("update request line", err)
				}
			}

			if err = tx.QuoteLog().Append(offers); err != nil {
				return storageError("append quote log", err)
			}

			totals := computeTotals(subtotal, req, settings)
			current.Subtotal = entity.NewNullDecimal(totals.Subtotal)
			current.DeliveryFee = entity.NewNullDecimal(totals.DeliveryFee)
			current.TaxAmount = entity.NewNullDecimal(totals.TaxAmount)
			current.Profit = entity.NewNullDecimal(totals.Profit)
			current.TotalAmount = entity.NewNullDecimal(totals.Total)
			current.Status = entity.StatusQuoted
			current.UpdatedAt = now
			if err = tx.Requests().Save(current); err != nil {
				return storageError("update request", err)
			}

			if err = s.Leads.OnQuoteSubmitted(tx, current.ID, totals.Total, now); err != nil {
				return storageError("sync leads", err)
			}

			quoted = current
			entries = len(offers)
			return nil
		})
	})

	if apierr != nil {
		return nil, apierr
	}

	log.Infof("request %s quoted by %s: %d offers, total %s", quoted.Number, actor.Subject, entries, quoted.TotalAmount.Decimal)
	return toRequestResponse(quoted), nil
}

// planQuote validates a submission against the request's lines. Every line
// has to be quoted exactly once with a complete first slot. Incomplete
// optional slots are dropped.
func planQuote(lines []*entity.RequestLine, req *contract.SubmitQuoteRequest) ([]*quotedLine, apierror.ErrorResponse) {
	byID := make(map[int64]*entity.RequestLine, len(lines))
	for _, line := range lines {
		byID[line.ID] = line
	}

	problems := apierror.NewStructured(http.StatusBadRequest)
	planned := make([]*quotedLine, 0, len(req.Lines))
	seen := make(map[int64]bool, len(req.Lines))
	missingPrimary := false

	for i, lr := range req.Lines {
		field := fmt.Sprintf("lines[%d]", i)

		line, ok := byID[lr.LineID]
		if !ok {
			problems.Add(field+".line_id", "Line does not belong to this request")
			continue
		}

		if seen[lr.LineID] {
			problems.Add(field+".line_id", "Line is quoted more than once")
			continue
		}
		seen[lr.LineID] = true

		ql := &quotedLine{line: line}
		for key, slot := range lr.Slots {
			n, err := strconv.Atoi(key)
			if err != nil || n < 1 || n > entity.MaxSupplierSlots || strconv.Itoa(n) != key {
				problems.Add(field+".slots", fmt.Sprintf("Slot %q is not between 1 and %d", key, entity.MaxSupplierSlots))
				continue
			}

			if slot != nil && slot.SupplierID > 0 && slot.UnitPrice.IsPositive() {
				ql.slots[n] = slot
			}
		}

		if ql.slots[1] == nil {
			missingPrimary = true
		}

		ql.show = highestSlot(ql)
		if lr.SuppliersToShow != nil {
			show := *lr.SuppliersToShow
			if show < 1 || show > entity.MaxSupplierSlots {
				problems.Add(field+".suppliers_to_show", fmt.Sprintf("Value must be between 1 and %d", entity.MaxSupplierSlots))
			}
			ql.show = show
		}

		planned = append(planned, ql)
	}

	if !problems.Empty() {
		return nil, problems
	}

	if missingPrimary || len(seen) != len(lines) {
		return nil, apierror.MissingPrimarySupplierError
	}
	return planned, nil
}

func highestSlot(ql *quotedLine) int {
	for n := entity.MaxSupplierSlots; n >= 1; n-- {
		if ql.slots[n] != nil {
			return n
		}
	}
	return 0
}

// checkSuppliers makes sure every offered supplier exists.
func checkSuppliers(tx Store, lines []*quotedLine) apierror.ErrorResponse {
	var ids []int64
	for _, ql := range lines {
		for _, slot := range ql.slots {
			if slot != nil {
				ids = append(ids, slot.SupplierID)
			}
		}
	}

	suppliers, err := tx.Catalog().FindSuppliersInIDs(ids)
	if err != nil {
		return storageError("fetch suppliers", err)
	}

	known := make(map[int64]bool, len(suppliers))
	for _, sup := range suppliers {
		known[sup.ID] = true
	}

	for _, id := range ids {
		if !known[id] {
			return apierror.NewSimple(http.StatusBadRequest, "Supplier %d does not exist", id)
		}
	}
	return nil
}

// computeTotals fills in every total the caller left out from the subtotal
// and the stored settings.
func computeTotals(subtotal decimal.Decimal, req *contract.SubmitQuoteRequest, settings *entity.Settings) quoteTotals {
	delivery := valueOr(req.DeliveryFee, decimal.Zero)
	rate := valueOr(req.TaxRate, settings.TaxRate)
	tax := valueOr(req.TaxAmount, subtotal.Mul(rate).Div(hundred).Round(2))
	profit := valueOr(req.Profit, pricing.ApplyMarkup(subtotal, settings.DefaultMarkup, settings.MarkupType).Profit.Round(2))

	return quoteTotals{
		Subtotal:    subtotal,
		DeliveryFee: delivery,
		TaxAmount:   tax,
		Profit:      profit,
		Total:       valueOr(req.TotalAmount, subtotal.Add(delivery).Add(tax)),
	}
}
