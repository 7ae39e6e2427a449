package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/observability"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// DocumentService tracks vehicle documents and their expiry status.
// The stored status is refreshed on every write; in between it may lag the calendar.
type DocumentService struct {
	DB        *sql.DB
	RequestID string
	Now       func() time.Time
}

func (s DocumentService) fail(action string, err error) error {
	return finish(s.RequestID, "documents", action, "vehicle document", err)
}

func buildDocument(in models.DocumentInput, today time.Time) (models.VehicleDocument, error) {
	d := models.VehicleDocument{
		Type:           models.DocumentType(strings.ToLower(utils.TrimOrEmpty(in.Type))),
		DocumentNumber: utils.TrimOrEmpty(in.DocumentNumber),
		Notes:          strings.TrimSpace(in.Notes),
	}
	if !d.Type.Valid() {
		return d, domain.ValidationError{Field: "type", Msg: "unknown document type"}
	}
	if err := required("document_number", d.DocumentNumber); err != nil {
		return d, err
	}
	issue, err := parseDateField("issue_date", in.IssueDate)
	if err != nil {
		return d, err
	}
	expiry, err := parseDateField("expiry_date", in.ExpiryDate)
	if err != nil {
		return d, err
	}
	if issue.After(expiry) {
		return d, domain.ValidationError{Field: "issue_date", Msg: "must not be after expiry_date"}
	}
	d.IssueDate = issue
	d.ExpiryDate = expiry
	d.Status = domain.ComputeDocumentStatus(expiry, today)
	return d, nil
}

func (s DocumentService) Create(ctx context.Context, vehicleID int64, in models.DocumentInput) (models.VehicleDocument, error) {
	now := resolveNow(s.Now)
	d, err := buildDocument(in, now)
	if err != nil {
		return models.VehicleDocument{}, s.fail("create", err)
	}
	d.VehicleID = vehicleID
	d.CreatedAt, d.UpdatedAt = now, now

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "vehicle", "vehicles", vehicleID); err != nil {
			return err
		}
		id, err := repositories.DocumentRepository{DB: tx}.Create(ctx, d)
		d.ID = id
		return err
	})
	if err != nil {
		return models.VehicleDocument{}, s.fail("create", err)
	}
	utils.LogEvent(s.RequestID, "documents", "create", fmt.Sprintf("vehicle_id=%d id=%d status=%s", vehicleID, d.ID, d.Status))
	return d, nil
}

func (s DocumentService) Get(ctx context.Context, vehicleID, id int64) (models.VehicleDocument, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return models.VehicleDocument{}, s.fail("get", err)
	}
	d, err := repositories.DocumentRepository{DB: db}.GetByID(ctx, vehicleID, id)
	if err != nil {
		return models.VehicleDocument{}, s.fail("get", lookup("vehicle document", id, err))
	}
	return d, nil
}

func (s DocumentService) List(ctx context.Context, vehicleID int64) ([]models.VehicleDocument, error) {
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list", err)
	}
	ok, err := repositories.Exists(ctx, db, "vehicles", vehicleID)
	if err != nil {
		return nil, s.fail("list", err)
	}
	if !ok {
		return nil, s.fail("list", domain.NotFoundError{Resource: "vehicle", ID: vehicleID})
	}
	out, err := repositories.DocumentRepository{DB: db}.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, s.fail("list", err)
	}
	return out, nil
}

func (s DocumentService) Update(ctx context.Context, vehicleID, id int64, in models.DocumentInput) (models.VehicleDocument, error) {
	now := resolveNow(s.Now)
	d, err := buildDocument(in, now)
	if err != nil {
		return models.VehicleDocument{}, s.fail("update", err)
	}
	d.ID = id
	d.VehicleID = vehicleID

	err = inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.DocumentRepository{DB: tx}
		existing, err := repo.GetByID(ctx, vehicleID, id)
		if err != nil {
			return lookup("vehicle document", id, err)
		}
		d.Attachment = existing.Attachment
		d.CreatedAt = existing.CreatedAt
		d.UpdatedAt = now
		return repo.Update(ctx, d)
	})
	if err != nil {
		return models.VehicleDocument{}, s.fail("update", err)
	}
	utils.LogEvent(s.RequestID, "documents", "update", fmt.Sprintf("vehicle_id=%d id=%d status=%s", vehicleID, id, d.Status))
	return d, nil
}

func (s DocumentService) Delete(ctx context.Context, vehicleID, id int64) error {
	db, err := resolveDB(s.DB)
	if err != nil {
		return s.fail("delete", err)
	}
	n, err := repositories.DocumentRepository{DB: db}.Delete(ctx, vehicleID, id)
	if err != nil {
		return s.fail("delete", err)
	}
	if n == 0 {
		return s.fail("delete", domain.NotFoundError{Resource: "vehicle document", ID: id})
	}
	utils.LogEvent(s.RequestID, "documents", "delete", fmt.Sprintf("vehicle_id=%d id=%d", vehicleID, id))
	return nil
}

// SetAttachment stores the reference returned by the blob store. The reference
// it replaced, if any, is returned so the caller can drop the old blob.
func (s DocumentService) SetAttachment(ctx context.Context, vehicleID, id int64, ref string) (models.VehicleDocument, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.VehicleDocument{}, "", s.fail("set_attachment", domain.ValidationError{Field: "attachment", Msg: "is required"})
	}

	var (
		d        models.VehicleDocument
		replaced string
	)
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.DocumentRepository{DB: tx}
		existing, err := repo.GetByID(ctx, vehicleID, id)
		if err != nil {
			return lookup("vehicle document", id, err)
		}
		now := resolveNow(s.Now)
		if err := repo.SetAttachment(ctx, vehicleID, id, ref, now); err != nil {
			return err
		}
		if existing.Attachment != ref {
			replaced = existing.Attachment
		}
		d = existing
		d.Attachment = ref
		d.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.VehicleDocument{}, "", s.fail("set_attachment", err)
	}
	utils.LogEvent(s.RequestID, "documents", "set_attachment", fmt.Sprintf("vehicle_id=%d id=%d replaced=%t", vehicleID, id, replaced != ""))
	return d, replaced, nil
}

// ListExpiring lists fleet documents expiring between today and today+withinDays.
// Status is re-derived for the response so callers always see the current tier.
func (s DocumentService) ListExpiring(ctx context.Context, withinDays int) ([]models.VehicleDocument, error) {
	if withinDays < 0 {
		return nil, s.fail("list_expiring", domain.ValidationError{Field: "days", Msg: "must not be negative"})
	}
	db, err := resolveDB(s.DB)
	if err != nil {
		return nil, s.fail("list_expiring", err)
	}
	today := resolveNow(s.Now)
	y, m, d := today.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	until := from.AddDate(0, 0, withinDays)

	out, err := repositories.DocumentRepository{DB: db}.ListExpiringBetween(ctx, from, until)
	if err != nil {
		return nil, s.fail("list_expiring", err)
	}
	for i := range out {
		out[i].Status = domain.ComputeDocumentStatus(out[i].ExpiryDate, today)
	}
	return out, nil
}

// RefreshStatuses re-applies the expiry rule to every document and returns how many changed.
func (s DocumentService) RefreshStatuses(ctx context.Context) (int, error) {
	changed := 0
	err := inTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repositories.DocumentRepository{DB: tx}
		rows, err := repo.ListStatusRows(ctx)
		if err != nil {
			return err
		}
		now := resolveNow(s.Now)
		for _, row := range rows {
			status := domain.ComputeDocumentStatus(row.ExpiryDate, now)
			if status == row.Status {
				continue
			}
			if err := repo.UpdateStatus(ctx, row.ID, status, now); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, s.fail("refresh_status", err)
	}
	observability.DocumentStatusChangesTotal.Add(float64(changed))
	utils.LogEvent(s.RequestID, "documents", "refresh_status", fmt.Sprintf("changed=%d", changed))
	return changed, nil
}
