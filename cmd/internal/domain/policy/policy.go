package policy

import (
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils/apierror"
)

// require checks that actor holds perm, administrators always pass.
func require(actor *entity.Actor, perm entity.Permission) apierror.ErrorResponse {
	if actor == nil {
		return apierror.UnauthorizedError
	}

	if !actor.Permissions.HasEffective(perm) {
		return permError(perm)
	}
	return nil
}

func permError(perm entity.Permission) *apierror.APIError {
	return apierror.NewMissingPermissionError(perm.String())
}
