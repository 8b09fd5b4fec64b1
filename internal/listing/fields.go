package listing

import "github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"

// Field names a plant attribute eligible for searching, filtering and
// sorting. The set is closed: an unknown name fails ParseField instead of
// silently matching nothing.
type Field string

const (
	FieldName              Field = "name"
	FieldCategory          Field = "category"
	FieldCareLevel         Field = "careLevel"
	FieldWateringFrequency Field = "wateringFrequency"
	FieldHealthStatus      Field = "healthStatus"
	FieldLastWatered       Field = "lastWatered"
	FieldNextWatering      Field = "nextWatering"
	FieldOwnerEmail        Field = "userEmail"
)

var accessors = map[Field]func(*domain.Plant) string{
	FieldName:              func(p *domain.Plant) string { return p.Name },
	FieldCategory:          func(p *domain.Plant) string { return p.Category },
	FieldCareLevel:         func(p *domain.Plant) string { return p.CareLevel },
	FieldWateringFrequency: func(p *domain.Plant) string { return p.WateringFrequency },
	FieldHealthStatus:      func(p *domain.Plant) string { return p.HealthStatus },
	FieldLastWatered:       func(p *domain.Plant) string { return p.LastWatered },
	FieldNextWatering:      func(p *domain.Plant) string { return p.NextWatering },
	FieldOwnerEmail:        func(p *domain.Plant) string { return p.OwnerEmail },
}

// ParseField maps a user-supplied name onto a known Field.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	_, ok := accessors[f]
	return f, ok
}

func (f Field) value(p *domain.Plant) string {
	get, ok := accessors[f]
	if !ok {
		return ""
	}
	return get(p)
}
