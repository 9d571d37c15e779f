package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

type WorkOrderHandler struct {
	woSvc   *service.WorkOrderService
	procSvc *service.ProcurementService
	export  *service.ExportService
}

func NewWorkOrderHandler(woSvc *service.WorkOrderService, procSvc *service.ProcurementService, export *service.ExportService) *WorkOrderHandler {
	return &WorkOrderHandler{woSvc: woSvc, procSvc: procSvc, export: export}
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":       c.Query("status"),
		"assembly_ipn": c.Query("assembly_ipn"),
		"search":       c.Query("search"),
	}

	items, total, err := h.woSvc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, paginated(items, page, pageSize, total))
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	wo, err := h.woSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, wo)
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	wo, err := h.woSvc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, wo)
}

func (h *WorkOrderHandler) Update(c *gin.Context) {
	var req service.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	wo, err := h.woSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, wo)
}

// BOM returns the netted requirement report for the work order's build
// quantity. Every status in the payload is computed on this request.
func (h *WorkOrderHandler) BOM(c *gin.Context) {
	report, err := h.woSvc.BOM(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, report)
}

func (h *WorkOrderHandler) ExportShortage(c *gin.Context) {
	f, filename, err := h.export.ShortageReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

type generatePORequest struct {
	VendorID string `json:"vendor_id" binding:"required"`
}

// GeneratePO creates a draft purchase order carrying exactly the work
// order's current shortage lines.
func (h *WorkOrderHandler) GeneratePO(c *gin.Context) {
	var req generatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.procSvc.GenerateFromWorkOrder(c.Request.Context(), c.Param("id"), req.VendorID, GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, po)
}
