package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

type POHandler struct {
	procSvc *service.ProcurementService
}

func NewPOHandler(procSvc *service.ProcurementService) *POHandler {
	return &POHandler{procSvc: procSvc}
}

func (h *POHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vendor_id":     c.Query("vendor_id"),
		"status":        c.Query("status"),
		"work_order_id": c.Query("work_order_id"),
		"search":        c.Query("search"),
	}

	items, total, err := h.procSvc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, paginated(items, page, pageSize, total))
}

func (h *POHandler) Get(c *gin.Context) {
	po, err := h.procSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

func (h *POHandler) Create(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.procSvc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, po)
}

func (h *POHandler) Submit(c *gin.Context) {
	po, err := h.procSvc.Submit(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}

type receiveRequest struct {
	Lines []service.ReceiptInput `json:"lines" binding:"required"`
}

// Receive applies receipt quantities. Nothing is mutated on a failed
// request, so the client's entered values remain valid for a retry.
func (h *POHandler) Receive(c *gin.Context) {
	var req receiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	po, err := h.procSvc.Receive(c.Request.Context(), c.Param("id"), GetUserID(c), req.Lines)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, po)
}
