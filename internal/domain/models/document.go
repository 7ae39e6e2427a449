package models

import "time"

type DocumentType string

const (
	DocSOAT                 DocumentType = "soat"
	DocREC                  DocumentType = "rec"
	DocRegistration         DocumentType = "registration"
	DocTechnicalRevision    DocumentType = "technical_revision"
	DocCirculationPermit    DocumentType = "circulation_permit"
	DocInsurance            DocumentType = "insurance"
	DocVehicleDocumentation DocumentType = "vehicle_documentation"
	DocOther                DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocSOAT, DocREC, DocRegistration, DocTechnicalRevision, DocCirculationPermit,
		DocInsurance, DocVehicleDocumentation, DocOther:
		return true
	}
	return false
}

// DocumentStatus is derived from the expiry date on every write.
type DocumentStatus string

const (
	DocumentValid        DocumentStatus = "valid"
	DocumentExpiringSoon DocumentStatus = "expiring_soon"
	DocumentExpired      DocumentStatus = "expired"
)

type VehicleDocument struct {
	ID             int64          `json:"id"`
	VehicleID      int64          `json:"vehicle_id"`
	Type           DocumentType   `json:"type"`
	DocumentNumber string         `json:"document_number"`
	IssueDate      time.Time      `json:"issue_date"`
	ExpiryDate     time.Time      `json:"expiry_date"`
	Status         DocumentStatus `json:"status"`
	Attachment     string         `json:"attachment,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type DocumentInput struct {
	Type           string `json:"type"`
	DocumentNumber string `json:"document_number"`
	IssueDate      string `json:"issue_date"`
	ExpiryDate     string `json:"expiry_date"`
	Notes          string `json:"notes"`
}
