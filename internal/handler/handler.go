package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
	"github.com/jsnapoli1/zrp-sub006/internal/middleware"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

// Envelope codes. 0 is success; the 1000x range mirrors the client's error
// taxonomy.
const (
	CodeOK               = 0
	CodeInvalidRequest   = 10001
	CodeNotFound         = 10002
	CodeInternal         = 10003
	CodeActionNotAllowed = 10004
)

// Handlers bundles the HTTP handlers.
type Handlers struct {
	Part      *PartHandler
	WorkOrder *WorkOrderHandler
	PO        *POHandler
	Vendor    *VendorHandler
	Quote     *QuoteHandler
	Campaign  *CampaignHandler
	Audit     *AuditHandler
}

func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Part:      NewPartHandler(svcs.Part, svcs.BOM),
		WorkOrder: NewWorkOrderHandler(svcs.WorkOrder, svcs.Procurement, svcs.Export),
		PO:        NewPOHandler(svcs.Procurement),
		Vendor:    NewVendorHandler(svcs.Procurement),
		Quote:     NewQuoteHandler(svcs.Quote),
		Campaign:  NewCampaignHandler(svcs.Campaign, svcs.Pollers),
		Audit:     NewAuditHandler(svcs.Audit),
	}
}

// RegisterRoutes mounts every endpoint under the given authenticated group.
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup) {
	parts := api.Group("/parts")
	{
		parts.GET("", h.Part.List)
		parts.POST("", h.Part.Create)
		parts.GET("/:ipn", h.Part.Detail)
		parts.PUT("/:ipn", h.Part.Update)
		parts.GET("/:ipn/bom", h.Part.BOM)
		parts.PUT("/:ipn/bom", h.Part.ReplaceBOM)
		parts.GET("/:ipn/where-used", h.Part.WhereUsed)
	}

	inventory := api.Group("/inventory")
	{
		inventory.GET("/transactions", h.Part.Transactions)
		inventory.POST("/adjust", middleware.RequireRole("inventory"), h.Part.Adjust)
	}

	workOrders := api.Group("/work-orders")
	{
		workOrders.GET("", h.WorkOrder.List)
		workOrders.POST("", h.WorkOrder.Create)
		workOrders.GET("/:id", h.WorkOrder.Get)
		workOrders.PUT("/:id", h.WorkOrder.Update)
		workOrders.GET("/:id/bom", h.WorkOrder.BOM)
		workOrders.GET("/:id/shortage-export", h.WorkOrder.ExportShortage)
		workOrders.POST("/:id/generate-po", h.WorkOrder.GeneratePO)
	}

	pos := api.Group("/purchase-orders")
	{
		pos.GET("", h.PO.List)
		pos.POST("", h.PO.Create)
		pos.GET("/:id", h.PO.Get)
		pos.POST("/:id/submit", h.PO.Submit)
		pos.POST("/:id/receive", h.PO.Receive)
	}

	vendors := api.Group("/vendors")
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
	}

	quotes := api.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.GET("/:id/costed", h.Quote.Costed)
	}

	campaigns := api.Group("/firmware-campaigns")
	{
		campaigns.GET("", h.Campaign.List)
		campaigns.POST("", h.Campaign.Create)
		campaigns.GET("/:id", h.Campaign.Get)
		campaigns.POST("/:id/status", h.Campaign.SetStatus)
		campaigns.POST("/:id/refresh", h.Campaign.Refresh)
	}

	api.GET("/audit-log", h.Audit.List)
}

// === response envelope ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Code: CodeOK, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{Code: CodeOK, Message: "success", Data: data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(400, Response{Code: CodeInvalidRequest, Message: message})
}

func ActionNotAllowed(c *gin.Context, message string) {
	c.JSON(400, Response{Code: CodeActionNotAllowed, Message: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(404, Response{Code: CodeNotFound, Message: message})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(500, Response{Code: CodeInternal, Message: message})
}

// RespondError maps service errors onto the envelope: missing records are
// 404, gated actions and malformed trees are validation failures, the rest
// is a 500.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	case errors.Is(err, service.ErrNoShortage),
		errors.Is(err, service.ErrVendorRequired),
		errors.Is(err, service.ErrOrderNotDraft),
		errors.Is(err, service.ErrOrderNotOpen),
		errors.Is(err, service.ErrNothingToReceive),
		errors.Is(err, service.ErrBadTransition):
		ActionNotAllowed(c, err.Error())
	case errors.Is(err, bom.ErrCycle):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}

func paginated(items interface{}, page, pageSize int, total int64) ListResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}
}
