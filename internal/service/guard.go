package service

import (
	"errors"
	"fmt"

	"daily-tiffin/internal/apperr"
	"daily-tiffin/internal/repository"

	"gorm.io/gorm"
)

// requireOwner is the ownership contract every read/mutate operation applies:
// only the user who created an entity may touch it.
func requireOwner(ownerID, requesterID, entity string) error {
	if ownerID != requesterID {
		return apperr.New(apperr.KindUnauthorized, "not authorized to access this %s", entity)
	}
	return nil
}

func findErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.KindNotFound, "%s not found", entity)
	}
	return fmt.Errorf("find %s: %w", entity, err)
}

func writeErr(err error, op string) error {
	if errors.Is(err, repository.ErrStaleEntity) {
		return apperr.New(apperr.KindConflict, "%s lost a concurrent update race, retry", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
