package persistence

import (
	"errors"

	"gorm.io/gorm"
)

// translateNotFound maps gorm's record-not-found to notFound
func translateNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// translateDuplicate maps a unique-constraint violation to conflict
func translateDuplicate(err, conflict error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return err
}
