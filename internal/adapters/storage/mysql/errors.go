package mysql

import (
	"database/sql/driver"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-lab/internal/domain"
)

// MySQL server error numbers.
const (
	errDupEntry         = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errTooManyConns     = 1040
	errLockWaitTimeout  = 1205
	errLockDeadlock     = 1213
	errBadNullForColumn = 1048
)

// mapError translates gorm and driver errors into domain errors.
func mapError(entity string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewIntegrityError(entity, err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldriver.ErrInvalidConn) {
		return domain.NewUnavailableError("mysql", err.Error())
	}

	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDupEntry, errRowIsReferenced, errNoReferencedRow, errBadNullForColumn:
			return domain.NewIntegrityError(entity, err)
		case errTooManyConns, errLockWaitTimeout, errLockDeadlock:
			return domain.NewUnavailableError("mysql", mysqlErr.Message)
		}
	}

	return err
}
