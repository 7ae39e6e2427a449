package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/storage"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxAttachmentBytes = 10 << 20

// GET /api/vehicles/:id/documents
func GetVehicleDocuments(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := documentService(c).List(c.Request.Context(), vehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/vehicles/:id/documents/:docId
func GetVehicleDocument(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}
	d, err := documentService(c).Get(c.Request.Context(), vehicleID, docID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/vehicles/:id/documents
func CreateVehicleDocument(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.DocumentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := documentService(c).Create(c.Request.Context(), vehicleID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/vehicles/:id/documents/:docId
func UpdateVehicleDocument(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}
	var in models.DocumentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := documentService(c).Update(c.Request.Context(), vehicleID, docID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/vehicles/:id/documents/:docId
func DeleteVehicleDocument(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}
	if err := documentService(c).Delete(c.Request.Context(), vehicleID, docID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "dokumen dihapus", "id": docID})
}

// POST /api/vehicles/:id/documents/:docId/attachment (multipart field "file")
func UploadVehicleDocumentAttachment(c *gin.Context) {
	vehicleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file wajib diisi", err)
		return
	}
	if fh.Size > maxAttachmentBytes {
		RespondError(c, http.StatusBadRequest, "file terlalu besar", nil)
		return
	}

	svc := documentService(c)
	// fail fast before touching disk
	if _, err := svc.Get(c.Request.Context(), vehicleID, docID); err != nil {
		RespondDomainError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "file tidak bisa dibaca", err)
		return
	}
	defer f.Close()

	ref, err := uploadStore.Save(storage.DocumentsPrefix, fh.Filename, f)
	if err != nil {
		utils.LogError(svc.RequestID, "documents", "upload_attachment", err)
		RespondDomainError(c, domain.InternalError{Msg: "gagal menyimpan file", Err: err})
		return
	}

	d, replaced, err := svc.SetAttachment(c.Request.Context(), vehicleID, docID, ref)
	if err != nil {
		_ = uploadStore.Remove(ref)
		RespondDomainError(c, err)
		return
	}
	if replaced != "" {
		if err := uploadStore.Remove(replaced); err != nil {
			utils.LogError(svc.RequestID, "documents", "remove_old_attachment", err)
		}
	}
	c.JSON(http.StatusOK, d)
}

// GET /api/documents/expiring?days=30
func GetExpiringDocuments(c *gin.Context) {
	days := domain.ExpiringSoonDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "days tidak valid", nil)
			return
		}
		days = n
	}
	out, err := documentService(c).ListExpiring(c.Request.Context(), days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/documents/refresh-status
func RefreshDocumentStatuses(c *gin.Context) {
	changed, err := documentService(c).RefreshStatuses(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": changed})
}
