package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/boatapi/internal/api/dto"
	"github.com/martijn/boatapi/internal/api/util"
	"github.com/martijn/boatapi/internal/core/repository"
	"github.com/martijn/boatapi/internal/core/service"
)

const TotalCountHeader = "X-Total-Count"

type BoatHandler struct {
	boatService *service.BoatService
}

func NewBoatHandler(boatService *service.BoatService) *BoatHandler {
	return &BoatHandler{
		boatService: boatService,
	}
}

// ListBoats handles GET /boats
func (h *BoatHandler) ListBoats(c *gin.Context) {
	values := c.Request.URL.Query()

	if !util.HasListParams(values) {
		boats, err := h.boatService.ListBoats(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Header(TotalCountHeader, strconv.Itoa(len(boats)))
		c.JSON(http.StatusOK, dto.NewBoatListResponse(boats))
		return
	}

	listFilter, err := util.ParseListFilter(values, repository.BoatQueryFields, repository.BoatOrderFields)
	if err != nil {
		_ = c.Error(service.NewValidationError(map[string]string{"query": err.Error()}))
		return
	}

	boats, total, err := h.boatService.SearchBoats(c.Request.Context(), repository.BoatFilter{ListFilter: listFilter})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header(TotalCountHeader, strconv.Itoa(total))
	c.JSON(http.StatusOK, dto.NewBoatListResponse(boats))
}

// GetBoat handles GET /boats/:id
func (h *BoatHandler) GetBoat(c *gin.Context) {
	id, ok := boatID(c)
	if !ok {
		return
	}

	boat, err := h.boatService.GetBoat(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBoatResponse(boat))
}

// CreateBoat handles POST /boats
func (h *BoatHandler) CreateBoat(c *gin.Context) {
	req, ok := bindBoat(c)
	if !ok {
		return
	}

	boat, err := h.boatService.CreateBoat(c.Request.Context(), req.ToDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBoatResponse(boat))
}

// UpdateBoat handles PUT /boats/:id
func (h *BoatHandler) UpdateBoat(c *gin.Context) {
	id, ok := boatID(c)
	if !ok {
		return
	}

	req, ok := bindBoat(c)
	if !ok {
		return
	}

	boat, err := h.boatService.UpdateBoat(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBoatResponse(boat))
}

// DeleteBoat handles DELETE /boats/:id
func (h *BoatHandler) DeleteBoat(c *gin.Context) {
	id, ok := boatID(c)
	if !ok {
		return
	}

	if err := h.boatService.DeleteBoat(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func boatID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(service.NewValidationError(map[string]string{"id": "Invalid boat ID"}))
		return 0, false
	}
	return id, true
}

func bindBoat(c *gin.Context) (dto.BoatRequest, bool) {
	var req dto.BoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(service.NewValidationError(map[string]string{"body": "Malformed JSON request body"}))
		return req, false
	}
	return req, true
}
