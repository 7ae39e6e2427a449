package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
)

// ErrNoDB is returned when neither an explicit handle nor the shared pool is set.
var ErrNoDB = errors.New("db tidak tersedia")

// ListFilter carries the optional list filters shared by registry lists.
type ListFilter struct {
	Query      string
	Active     *bool
	Status     string
	Pagination domain.Pagination
}

func conn(d intdb.DBTX) (intdb.DBTX, error) {
	if d != nil {
		return d, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, ErrNoDB
}

// CountOthers counts rows where column equals value, ignoring excludeID.
// Used for uniqueness pre-checks inside a transaction.
func CountOthers(ctx context.Context, q intdb.DBTX, table, column string, value any, excludeID int64) (int, error) {
	c, err := conn(q)
	if err != nil {
		return 0, err
	}
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ? AND id <> ?", table, column)
	if err := c.QueryRowContext(ctx, query, value, excludeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Exists reports whether a row with id exists in table.
func Exists(ctx context.Context, q intdb.DBTX, table string, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	c, err := conn(q)
	if err != nil {
		return false, err
	}
	var n int
	if err := c.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func paginate(query string, args []any, p domain.Pagination) (string, []any) {
	p = p.Normalize()
	if !p.Enabled() {
		return query, args
	}
	return query + " LIMIT ? OFFSET ?", append(args, p.PageSize, p.Offset())
}

func likeArg(q string) string {
	return "%" + strings.TrimSpace(q) + "%"
}

func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
