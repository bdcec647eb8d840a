package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// IsDuplicateEntry reports whether the store rejected a write because of a
// unique constraint. Both the translated gorm error and the raw MySQL
// duplicate-entry code are checked since TranslateError only covers drivers
// that implement it.
func IsDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
