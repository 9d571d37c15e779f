package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/service"
)

type CampaignHandler struct {
	campaignSvc *service.CampaignService
	pollers     *service.PollerManager
}

func NewCampaignHandler(campaignSvc *service.CampaignService, pollers *service.PollerManager) *CampaignHandler {
	return &CampaignHandler{campaignSvc: campaignSvc, pollers: pollers}
}

func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, campaigns)
}

func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.campaignSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, campaign)
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req service.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	campaign, err := h.campaignSvc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, campaign)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CampaignHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	campaign, err := h.campaignSvc.SetStatus(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	// A running campaign gets a background progress poller; the loop sees
	// any later transition on its next tick and shuts itself down.
	if campaign.Status == entity.CampaignStatusRunning {
		h.pollers.Ensure(context.WithoutCancel(c.Request.Context()), campaign.ID)
	}

	Success(c, campaign)
}

// Refresh recounts device progress on demand, the same pass the background
// poller runs on its interval.
func (h *CampaignHandler) Refresh(c *gin.Context) {
	id := c.Param("id")
	if err := h.campaignSvc.Refresh(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	campaign, err := h.campaignSvc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, campaign)
}
