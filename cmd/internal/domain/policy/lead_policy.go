package policy

import (
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils/apierror"
)

const (
	manageLeads = entity.PermissionManageLeads
	deleteLeads = entity.PermissionDeleteLeads
)

type LeadPolicy struct{}

func NewLeadPolicy() *LeadPolicy {
	return &LeadPolicy{}
}

func (p *LeadPolicy) CanManage(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, manageLeads)
}

// CanDelete requires both lead permissions, deleting is managing too.
func (p *LeadPolicy) CanDelete(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, manageLeads|deleteLeads)
}
