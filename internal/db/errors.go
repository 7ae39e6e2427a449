package db

import (
	"errors"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

const (
	erDupEntry          = 1062
	erRowIsReferenced   = 1451
	erNoReferencedRow   = 1452
	erRowIsReferencedV2 = 1217
	erNoReferencedRowV2 = 1216
)

var dupKeyRe = regexp.MustCompile(`for key '(?:[^.']*\.)?([^']+)'`)

func mysqlErrorNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// IsDuplicateKey reports a unique index violation.
func IsDuplicateKey(err error) bool {
	return mysqlErrorNumber(err) == erDupEntry
}

// IsForeignKeyViolation reports a blocked delete or a missing parent row.
func IsForeignKeyViolation(err error) bool {
	switch mysqlErrorNumber(err) {
	case erRowIsReferenced, erNoReferencedRow, erRowIsReferencedV2, erNoReferencedRowV2:
		return true
	}
	return false
}

// DuplicateKeyName extracts the index name from a duplicate-entry message.
func DuplicateKeyName(err error) string {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != erDupEntry {
		return ""
	}
	m := dupKeyRe.FindStringSubmatch(me.Message)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
