// Package repository wraps gorm access to every table of the site. Handlers
// and services receive repositories through their constructors.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested row does not exist. Handlers
// translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrConflict signals a unique constraint clash (slug, username).
var ErrConflict = errors.New("conflict")

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
