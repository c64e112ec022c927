package policy

import (
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils/apierror"
)

const (
	viewRequests   = entity.PermissionViewRequests
	manageRequests = entity.PermissionManageRequests
	deleteRequests = entity.PermissionDeleteRequests
	submitQuotes   = entity.PermissionSubmitQuotes
)

// RequestPolicy encapsulates who may touch requests and their quotations.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type RequestPolicy struct{}

func NewRequestPolicy() *RequestPolicy {
	return &RequestPolicy{}
}

func (p *RequestPolicy) CanView(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, viewRequests)
}

func (p *RequestPolicy) CanUpdate(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, manageRequests)
}

func (p *RequestPolicy) CanDelete(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, deleteRequests)
}

func (p *RequestPolicy) CanSubmitQuote(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, submitQuotes)
}
