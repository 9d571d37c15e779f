package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

type AuditHandler struct {
	auditSvc *service.AuditService
}

func NewAuditHandler(auditSvc *service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

func (h *AuditHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"action":      c.Query("action"),
		"entity_type": c.Query("entity_type"),
		"entity_id":   c.Query("entity_id"),
	}

	items, total, err := h.auditSvc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, paginated(items, page, pageSize, total))
}
