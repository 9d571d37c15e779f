package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

// PartHandler serves the part catalog, the composite detail view, BOM
// resolution and inventory movements.
type PartHandler struct {
	partSvc *service.PartService
	bomSvc  *service.BOMService
}

func NewPartHandler(partSvc *service.PartService, bomSvc *service.BOMService) *PartHandler {
	return &PartHandler{partSvc: partSvc, bomSvc: bomSvc}
}

func (h *PartHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"category":    c.Query("category"),
		"is_assembly": c.Query("is_assembly"),
		"search":      c.Query("search"),
	}

	items, total, err := h.partSvc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, paginated(items, page, pageSize, total))
}

// Detail returns the part plus its secondary sections. A failed section
// comes back null with a message while the rest of the payload is intact;
// only a missing part is a 404.
func (h *PartHandler) Detail(c *gin.Context) {
	detail, err := h.partSvc.Detail(c.Request.Context(), c.Param("ipn"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, detail)
}

func (h *PartHandler) Create(c *gin.Context) {
	var req service.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	part, err := h.partSvc.Create(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, part)
}

func (h *PartHandler) Update(c *gin.Context) {
	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	part, err := h.partSvc.Update(c.Request.Context(), c.Param("ipn"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, part)
}

// BOM resolves the assembly at a build quantity (default 1). The response
// carries the tree, the flattened lines, the netted leaves and the summary.
func (h *PartHandler) BOM(c *gin.Context) {
	qty := 1.0
	if q := c.Query("qty"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v <= 0 {
			BadRequest(c, "qty must be a positive number")
			return
		}
		qty = v
	}

	res, err := h.bomSvc.Resolve(c.Request.Context(), c.Param("ipn"), qty)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, res)
}

// ReplaceBOM swaps the assembly's direct children and returns the new edge
// set.
func (h *PartHandler) ReplaceBOM(c *gin.Context) {
	var req service.ReplaceBOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	items, err := h.partSvc.ReplaceBOM(c.Request.Context(), c.Param("ipn"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, items)
}

func (h *PartHandler) WhereUsed(c *gin.Context) {
	entries, err := h.bomSvc.WhereUsed(c.Request.Context(), c.Param("ipn"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, entries)
}

func (h *PartHandler) Transactions(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	txns, err := h.partSvc.ListTransactions(c.Request.Context(), c.Query("ipn"), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, txns)
}

func (h *PartHandler) Adjust(c *gin.Context) {
	var req service.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	inv, err := h.partSvc.AdjustInventory(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, inv)
}
