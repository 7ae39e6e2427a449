package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RespondError sends a plain request-level error (bad params, bad body).
func RespondError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	respondError(c, status, domain.KindValidation, message)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// paramID reads a positive integer path param, answering 400 otherwise.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, name+" tidak valid", nil)
		return 0, false
	}
	return id, true
}

func queryPagination(c *gin.Context) domain.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.Pagination{Page: page, PageSize: limit}.Normalize()
}

func queryListFilter(c *gin.Context) (repositories.ListFilter, bool) {
	f := repositories.ListFilter{
		Query:      strings.TrimSpace(c.Query("q")),
		Status:     strings.TrimSpace(c.Query("status")),
		Pagination: queryPagination(c),
	}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "active tidak valid", nil)
			return f, false
		}
		f.Active = &b
	}
	return f, true
}

// respondList wraps list results with paging info when paging is on.
func respondList(c *gin.Context, items any, p domain.Pagination) {
	if !p.Enabled() {
		c.JSON(http.StatusOK, items)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "page": p.Page, "limit": p.PageSize})
}
