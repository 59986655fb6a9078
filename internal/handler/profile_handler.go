package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sumitroy01/Donate-v2/internal/pkg/errcode"
	"github.com/sumitroy01/Donate-v2/internal/pkg/response"
	"github.com/sumitroy01/Donate-v2/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileCreateRequest struct {
	Title        string  `json:"title"`
	Story        string  `json:"story"`
	DonationGoal float64 `json:"donation_goal"`
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var req profileCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	profile, err := h.profiles.Create(c.Request.Context(), getUserID(c), service.ProfileCreateInput{
		Title:        req.Title,
		Story:        req.Story,
		DonationGoal: req.DonationGoal,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *ProfileHandler) Mine(c *gin.Context) {
	profile, err := h.profiles.GetOwn(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *ProfileHandler) List(c *gin.Context) {
	limit := uint(0)
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = uint(parsed)
		}
	}
	profiles, err := h.profiles.List(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profiles)
}

type profileUpdateRequest struct {
	Title        *string  `json:"title"`
	Story        *string  `json:"story"`
	DonationGoal *float64 `json:"donation_goal"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), c.Param("id"), getUserID(c), service.ProfileUpdateInput{
		Title:        req.Title,
		Story:        req.Story,
		DonationGoal: req.DonationGoal,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}
