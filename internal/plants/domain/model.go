package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for plant dates (ISO date, no time part).
const DateLayout = "2006-01-02"

// Plant categories as stored and filtered on. Filtering compares these
// values with case-sensitive equality, so the vocabulary is fixed here.
const (
	CategorySucculent = "succulent"
	CategoryFern      = "fern"
	CategoryFlowering = "flowering"
	CategoryCactus    = "cactus"
	CategoryHerb      = "herb"
	CategoryFoliage   = "foliage"
	CategoryOther     = "other"
)

const (
	CareLevelEasy      = "easy"
	CareLevelModerate  = "moderate"
	CareLevelDifficult = "difficult"
)

var categories = map[string]bool{
	CategorySucculent: true,
	CategoryFern:      true,
	CategoryFlowering: true,
	CategoryCactus:    true,
	CategoryHerb:      true,
	CategoryFoliage:   true,
	CategoryOther:     true,
}

var careLevels = map[string]bool{
	CareLevelEasy:      true,
	CareLevelModerate:  true,
	CareLevelDifficult: true,
}

// Plant represents a single tracked plant. JSON field names match the wire
// contract the SPA consumes, including the Mongo-style "_id" key.
type Plant struct {
	ID                string    `json:"_id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	CareLevel         string    `json:"careLevel"`
	WateringFrequency string    `json:"wateringFrequency"`
	HealthStatus      string    `json:"healthStatus"`
	LastWatered       string    `json:"lastWatered"`
	NextWatering      string    `json:"nextWatering"`
	Description       string    `json:"description"`
	Image             string    `json:"image"`
	OwnerEmail        string    `json:"userEmail"`
	OwnerName         string    `json:"userName"`
	CreatedAt         time.Time `json:"created_at,omitzero"`
	UpdatedAt         time.Time `json:"updated_at,omitzero"`
}

// ValidCategory reports whether v is in the category vocabulary.
func ValidCategory(v string) bool { return categories[v] }

// ValidCareLevel reports whether v is in the care level vocabulary.
func ValidCareLevel(v string) bool { return careLevels[v] }

// Validate checks the pre-submission rules. It is called before any storage
// write; a failing plant is never persisted.
func (p *Plant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !ValidCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}
	if !ValidCareLevel(p.CareLevel) {
		return fmt.Errorf("%w: unknown care level %q", ErrValidation, p.CareLevel)
	}

	last, err := parseDate(p.LastWatered)
	if err != nil {
		return fmt.Errorf("%w: lastWatered: %v", ErrValidation, err)
	}
	next, err := parseDate(p.NextWatering)
	if err != nil {
		return fmt.Errorf("%w: nextWatering: %v", ErrValidation, err)
	}

	// Both dates are optional; order is only checked when both are set.
	if !last.IsZero() && !next.IsZero() && next.Before(last) {
		return fmt.Errorf("%w: nextWatering must not precede lastWatered", ErrValidation)
	}

	return nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", v)
	}
	return t, nil
}
