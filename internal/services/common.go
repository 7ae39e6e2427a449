package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/observability"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

var uniqueKeyFields = map[string]string{
	"uq_drivers_national_id":    "national_id",
	"uq_drivers_email":          "email",
	"uq_passengers_national_id": "national_id",
	"uq_vehicles_plate":         "plate",
	"uq_vehicles_chassis":       "chassis_number",
	"uq_vehicles_engine":        "engine_number",
	"uq_trip_costs_trip":        "trip_id",
}

func resolveDB(db *sql.DB) (*sql.DB, error) {
	if db != nil {
		return db, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, domain.InternalError{Msg: "database is not available"}
}

func resolveNow(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}

// inTx opens one transaction for a whole operation.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	conn, err := resolveDB(db)
	if err != nil {
		return err
	}
	return intdb.WithTx(ctx, conn, fn)
}

// classify maps storage errors onto domain kinds. Domain errors pass through.
func classify(resource string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsDomain(err) {
		return err
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFoundError{Resource: resource, Err: err}
	case intdb.IsDuplicateKey(err):
		return domain.UniqueConstraintError{Resource: resource, Field: uniqueKeyFields[intdb.DuplicateKeyName(err)], Err: err}
	case intdb.IsForeignKeyViolation(err):
		return domain.ReferentialIntegrityError{Resource: resource, Err: err}
	}
	return domain.InternalError{Msg: resource + " operation failed", Err: err}
}

// lookup reports a missing row as NOT_FOUND for the given id.
func lookup(resource string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	}
	return err
}

// finish logs and counts a failed operation, then returns the classified error.
func finish(requestID, module, action, resource string, err error) error {
	if err == nil {
		return nil
	}
	err = classify(resource, err)
	kind := domain.KindOf(err)
	observability.DomainErrorsTotal.WithLabelValues(kind).Inc()
	if kind == domain.KindInternal {
		utils.LogError(requestID, module, action, err)
	} else {
		utils.LogEvent(requestID, module, action, strings.ToLower(kind)+": "+err.Error())
	}
	return err
}

// ensureUnique fails with UNIQUE_CONSTRAINT when another row already holds value.
func ensureUnique(ctx context.Context, q intdb.DBTX, resource, table, column string, value any, selfID int64) error {
	n, err := repositories.CountOthers(ctx, q, table, column, value, selfID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.UniqueConstraintError{Resource: resource, Field: column}
	}
	return nil
}

// requireExists turns a missing parent into REFERENTIAL_INTEGRITY.
func requireExists(ctx context.Context, q intdb.DBTX, resource, table string, id int64) error {
	ok, err := repositories.Exists(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ReferentialIntegrityError{Resource: resource, Msg: "referenced record does not exist"}
	}
	return nil
}
