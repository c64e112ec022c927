package service

import (
	"context"
	"errors"

	"rfqengine/cmd/internal/infrastructure/lock"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

// errRollback aborts a transaction whose failure was already reported
// through an apierror.ErrorResponse.
var errRollback = errors.New("rollback")

// inTx runs fn in one transaction. A non-nil ErrorResponse from fn rolls the
// transaction back and is returned as is.
func inTx(ctx context.Context, store Store, fn func(tx Store) apierror.ErrorResponse) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse
	err := store.Transaction(ctx, func(tx Store) error {
		apierr = fn(tx)
		if apierr != nil {
			return errRollback
		}
		return nil
	})

	if apierr != nil {
		return apierr
	}

	if err != nil {
		log.Errorf("failed to commit transaction: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// withRequestLock runs fn while holding the mutation lock of one request.
func withRequestLock(ctx context.Context, locker lock.Locker, requestID int64, fn func() apierror.ErrorResponse) apierror.ErrorResponse {
	release, err := locker.Obtain(ctx, lock.RequestKey(requestID))
	if errors.Is(err, lock.ErrNotObtained) {
		log.Warnf("request %d is busy, rejecting concurrent mutation", requestID)
		return apierror.RequestBusyError
	}

	if err != nil && ctx.Err() != nil {
		log.Debugf("caller gave up waiting for request %d: %v", requestID, err)
		return apierror.InternalServerError
	}

	if err != nil {
		log.Errorf("failed to obtain lock for request %d: %v", requestID, err)
		return apierror.InternalServerError
	}

	defer release()
	return fn()
}

func storageError(action string, err error) apierror.ErrorResponse {
	log.Errorf("failed to %s: %v", action, err)
	return apierror.InternalServerError
}

func valueOr(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}
