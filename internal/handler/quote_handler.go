package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

type QuoteHandler struct {
	quoteSvc *service.QuoteService
}

func NewQuoteHandler(quoteSvc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

func (h *QuoteHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status": c.Query("status"),
		"search": c.Query("search"),
	}

	items, total, err := h.quoteSvc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, paginated(items, page, pageSize, total))
}

func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.quoteSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req service.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteSvc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, quote)
}

func (h *QuoteHandler) Update(c *gin.Context) {
	var req service.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, quote)
}

// Costed returns the quote with per-line and total margins against the
// current cost catalog.
func (h *QuoteHandler) Costed(c *gin.Context) {
	view, err := h.quoteSvc.Costed(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, view)
}
