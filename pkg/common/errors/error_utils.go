package errors

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// region error helpers

// WrapGormError turns a raw database error into a sentinel the service layer understands.
// Parameters:
//   - rawErr: the error returned by GORM
//
// Returns:
//   - error: ErrUserNotFound, ErrDuplicateEntry or ErrDatabaseInternal (wrapping rawErr)
func WrapGormError(rawErr error) error {
	if rawErr == nil {
		return nil
	}

	switch {
	case errors.Is(rawErr, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(rawErr, gorm.ErrDuplicatedKey):
		return ErrDuplicateEntry
	}

	// MySQL driver errors when TranslateError is off or the dialect missed it
	var mysqlErr *mysql.MySQLError
	if errors.As(rawErr, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062: // unique constraint
			return ErrDuplicateEntry
		case 1045, 1049, 1146: // access denied, unknown database, missing table
			return fmt.Errorf("%w: %s", ErrDatabaseInternal, mysqlErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", ErrDatabaseInternal, rawErr)
}

// IsDuplicateError reports whether err is a unique constraint violation.
func IsDuplicateError(err error) bool {
	if errors.Is(err, ErrDuplicateEntry) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// endregion
