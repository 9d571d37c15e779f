package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

type VendorHandler struct {
	procSvc *service.ProcurementService
}

func NewVendorHandler(procSvc *service.ProcurementService) *VendorHandler {
	return &VendorHandler{procSvc: procSvc}
}

func (h *VendorHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") != "false"
	vendors, err := h.procSvc.ListVendors(c.Request.Context(), activeOnly)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, vendors)
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req service.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	vendor, err := h.procSvc.CreateVendor(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, vendor)
}
