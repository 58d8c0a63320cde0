package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/http/response"
)

type CropService interface {
	Kind() catalog.Kind
	GetCrop(ctx context.Context, id uuid.UUID) (*catalog.Crop, error)
	ListCrops(ctx context.Context) ([]*catalog.Crop, error)
	ListByFarm(ctx context.Context, farmID uuid.UUID) ([]*catalog.Crop, error)
	SearchByName(ctx context.Context, substr string) ([]*catalog.Crop, error)
	FilterByColor(ctx context.Context, color string) ([]*catalog.Crop, error)
	FindByColorAndWeight(ctx context.Context, color string, weight float64) ([]*catalog.Crop, error)
	CreateCrop(ctx context.Context, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error)
	UpdateCrop(ctx context.Context, id, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error)
	MoveCrop(ctx context.Context, id, farmID uuid.UUID) (domainagg.MoveCropResult, error)
	DeleteCrop(ctx context.Context, id uuid.UUID) error
	DeleteByFarm(ctx context.Context, farmID uuid.UUID) (domainagg.DeleteCropsResult, error)
}

// CropHandler serves one crop kind; fruits and vegetables share the routes.
type CropHandler struct {
	crops CropService
	one   string
	many  string
}

func NewCropHandler(crops CropService) *CropHandler {
	kind := crops.Kind()
	return &CropHandler{crops: crops, one: kind.String(), many: kind.Plural()}
}

type cropRequest struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Weight float64 `json:"weight"`
	FarmID string  `json:"farm_id"`
}

func (r cropRequest) attrs() catalog.CropAttributes {
	return catalog.CropAttributes{Name: r.Name, Color: r.Color, Weight: r.Weight}
}

type moveRequest struct {
	FarmID string `json:"farm_id"`
}

func (h *CropHandler) badRequest(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
}

// GET /api/{kind}?name=&color=
func (h *CropHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		crops []*catalog.Crop
		err   error
	)
	switch name, color := c.Query("name"), c.Query("color"); {
	case strings.TrimSpace(name) != "":
		crops, err = h.crops.SearchByName(ctx, name)
	case strings.TrimSpace(color) != "":
		crops, err = h.crops.FilterByColor(ctx, color)
	default:
		crops, err = h.crops.ListCrops(ctx)
	}
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{h.many: crops})
}

// POST /api/{kind}
func (h *CropHandler) Create(c *gin.Context) {
	var req cropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	farmID, err := farmIDFrom(c, req.FarmID)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	crop, err := h.crops.CreateCrop(c.Request.Context(), farmID, req.attrs())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{h.one: crop})
}

// GET /api/{kind}/:id
func (h *CropHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	crop, err := h.crops.GetCrop(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{h.one: crop})
}

// PUT /api/{kind}/:id
func (h *CropHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req cropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	farmID, err := farmIDFrom(c, req.FarmID)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	crop, err := h.crops.UpdateCrop(c.Request.Context(), id, farmID, req.attrs())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{h.one: crop})
}

// PUT /api/{kind}/:id/farm
func (h *CropHandler) Move(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	farmID, err := farmIDFrom(c, req.FarmID)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.crops.MoveCrop(c.Request.Context(), id, farmID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		h.one:          res.Crop,
		"from_farm_id": res.FromFarmID,
		"moved":        res.Moved,
	})
}

// DELETE /api/{kind}/:id
func (h *CropHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.crops.DeleteCrop(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/{kind}/farm/:farmId
func (h *CropHandler) ListByFarm(c *gin.Context) {
	farmID, err := pathID(c, "farmId")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	crops, err := h.crops.ListByFarm(c.Request.Context(), farmID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{h.many: crops})
}

// DELETE /api/{kind}/farm/:farmId
func (h *CropHandler) DeleteByFarm(c *gin.Context) {
	farmID, err := pathID(c, "farmId")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.crops.DeleteByFarm(c.Request.Context(), farmID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}

// GET /api/{kind}/by-color-and-weight?color=&weight=
func (h *CropHandler) ByColorAndWeight(c *gin.Context) {
	color := strings.TrimSpace(c.Query("color"))
	if color == "" {
		response.RespondDomainError(c, catalog.Invalid("color", "is required"))
		return
	}
	weight, err := queryFloat(c, "weight")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	crops, err := h.crops.FindByColorAndWeight(c.Request.Context(), color, weight)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{h.many: crops})
}
