package http

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plantkeeper/plantkeeper-backend/internal/listing"
	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

// PlantService is what the handlers need from the service layer;
// *service.Service satisfies it.
type PlantService interface {
	List(ctx context.Context) ([]domain.Plant, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Plant, error)
	Get(ctx context.Context, id string) (*domain.Plant, error)
	Create(ctx context.Context, p domain.Plant, ownerEmail, ownerName string) (string, error)
	Update(ctx context.Context, id string, p domain.Plant, callerEmail string) (int64, error)
	Delete(ctx context.Context, id string, callerEmail string) (int64, error)
}

// Handler bundles the dependencies for plant HTTP endpoints.
type Handler struct {
	svc PlantService
}

func New(svc PlantService) *Handler {
	return &Handler{svc: svc}
}

type plantPayload struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	CareLevel         string `json:"careLevel"`
	WateringFrequency string `json:"wateringFrequency"`
	HealthStatus      string `json:"healthStatus"`
	LastWatered       string `json:"lastWatered"`
	NextWatering      string `json:"nextWatering"`
	Description       string `json:"description"`
	Image             string `json:"image"`
}

func (p plantPayload) toDomain() domain.Plant {
	return domain.Plant{
		Name:              p.Name,
		Category:          p.Category,
		CareLevel:         p.CareLevel,
		WateringFrequency: p.WateringFrequency,
		HealthStatus:      p.HealthStatus,
		LastWatered:       p.LastWatered,
		NextWatering:      p.NextWatering,
		Description:       p.Description,
		Image:             p.Image,
	}
}

type viewResponse struct {
	Items         []domain.Plant `json:"items"`
	TotalMatched  int            `json:"totalMatched"`
	TotalPages    int            `json:"totalPages"`
	EffectivePage int            `json:"page"`
}

// parseQuery overlays the request's query params onto a base query. Unknown
// sort or filter field names leave the base untouched instead of silently
// matching nothing.
func parseQuery(c *gin.Context, base listing.Query) listing.Query {
	q := base

	if search, ok := c.GetQuery("q"); ok {
		q.SetSearch(search)
	}
	if category, ok := c.GetQuery("category"); ok {
		q.SetFilter(listing.FieldCategory, category)
	}
	if care, ok := c.GetQuery("careLevel"); ok {
		q.SetFilter(listing.FieldCareLevel, care)
	}
	if sortName, ok := c.GetQuery("sort"); ok {
		if f, ok := listing.ParseField(sortName); ok {
			q.SortKey = f
		}
	}
	if dir, ok := c.GetQuery("dir"); ok && (dir == string(listing.Asc) || dir == string(listing.Desc)) {
		q.SortDir = listing.Dir(dir)
	}
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil && size > 0 && size <= 100 {
		q.PageSize = size
	}
	// Page is applied last: search/filter changes above reset it to 1, and
	// an explicit page param wins over that reset.
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.SetPage(page)
	}

	return q
}
