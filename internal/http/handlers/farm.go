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

type FarmService interface {
	CreateFarm(ctx context.Context, attrs catalog.FarmAttributes) (*catalog.Farm, error)
	UpdateFarm(ctx context.Context, id uuid.UUID, attrs catalog.FarmAttributes) (*catalog.Farm, error)
	GetFarm(ctx context.Context, id uuid.UUID) (*catalog.FarmView, error)
	FindByName(ctx context.Context, name string) (*catalog.Farm, error)
	ListFarms(ctx context.Context) ([]*catalog.Farm, error)
	DeleteFarm(ctx context.Context, id uuid.UUID) (domainagg.DeleteCropsResult, error)
	DeleteCrops(ctx context.Context, id uuid.UUID, kind catalog.Kind) (domainagg.DeleteCropsResult, error)
}

type FarmAggregations interface {
	StatsForFarm(ctx context.Context, farmID uuid.UUID) (*catalog.FarmStats, error)
	SearchFarmsByName(ctx context.Context, substr string) ([]*catalog.Farm, error)
	FarmsByLocation(ctx context.Context, substr string) ([]*catalog.Farm, error)
	RankFarms(ctx context.Context, sortBy, order string) ([]catalog.FarmRanking, error)
}

type FarmHandler struct {
	farms FarmService
	aggs  FarmAggregations
}

func NewFarmHandler(farms FarmService, aggs FarmAggregations) *FarmHandler {
	return &FarmHandler{farms: farms, aggs: aggs}
}

type farmRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (r farmRequest) attrs() catalog.FarmAttributes {
	return catalog.FarmAttributes{Name: r.Name, Location: r.Location}
}

// GET /api/farms
func (h *FarmHandler) ListFarms(c *gin.Context) {
	farms, err := h.farms.ListFarms(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farms": farms})
}

// POST /api/farms
func (h *FarmHandler) CreateFarm(c *gin.Context) {
	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	farm, err := h.farms.CreateFarm(c.Request.Context(), req.attrs())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"farm": farm})
}

// GET /api/farms/:id
func (h *FarmHandler) GetFarm(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	view, err := h.farms.GetFarm(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farm": view})
}

// PUT /api/farms/:id
func (h *FarmHandler) UpdateFarm(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	var req farmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	farm, err := h.farms.UpdateFarm(c.Request.Context(), id, req.attrs())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farm": farm})
}

// DELETE /api/farms/:id
func (h *FarmHandler) DeleteFarm(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	res, err := h.farms.DeleteFarm(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}

// DELETE /api/farms/:id/crops?kind=
func (h *FarmHandler) DeleteCrops(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	var kind catalog.Kind
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		k, ok := catalog.ParseCropKind(raw)
		if !ok {
			response.RespondDomainError(c, catalog.InvalidArgument("kind", raw, catalog.KindFruit.String(), catalog.KindVegetable.String()))
			return
		}
		kind = k
	}
	res, err := h.farms.DeleteCrops(c.Request.Context(), id, kind)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": res})
}

// GET /api/farms/:id/stats
func (h *FarmHandler) FarmStats(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidRequest, err)
		return
	}
	stats, err := h.aggs.StatsForFarm(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}

// GET /api/farms/search?name=
func (h *FarmHandler) SearchByName(c *gin.Context) {
	farms, err := h.aggs.SearchFarmsByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farms": farms})
}

// GET /api/farms/by-name?name=
func (h *FarmHandler) ByName(c *gin.Context) {
	farm, err := h.farms.FindByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farm": farm})
}

// GET /api/farms/by-location?location=
func (h *FarmHandler) ByLocation(c *gin.Context) {
	farms, err := h.aggs.FarmsByLocation(c.Request.Context(), c.Query("location"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farms": farms})
}

// GET /api/farms/ranking?sort_by=&order=
func (h *FarmHandler) Ranking(c *gin.Context) {
	rankings, err := h.aggs.RankFarms(c.Request.Context(), c.Query("sort_by"), c.Query("order"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"farms": rankings})
}
