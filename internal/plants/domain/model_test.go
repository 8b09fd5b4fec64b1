package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlant() Plant {
	return Plant{
		Name:              "Snake Plant",
		Category:          CategorySucculent,
		CareLevel:         CareLevelEasy,
		WateringFrequency: "every 2 weeks",
		LastWatered:       "2024-01-05",
		NextWatering:      "2024-01-19",
	}
}

func TestValidate_Accepts(t *testing.T) {
	p := validPlant()
	require.NoError(t, p.Validate())

	// Dates are optional individually and together.
	p.LastWatered = ""
	require.NoError(t, p.Validate())
	p.NextWatering = ""
	require.NoError(t, p.Validate())
}

func TestValidate_RejectsNextWateringBeforeLastWatered(t *testing.T) {
	p := validPlant()
	p.LastWatered = "2024-01-10"
	p.NextWatering = "2024-01-05"

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestValidate_SameDayWateringIsAllowed(t *testing.T) {
	p := validPlant()
	p.LastWatered = "2024-01-10"
	p.NextWatering = "2024-01-10"
	assert.NoError(t, p.Validate())
}

func TestValidate_RejectsMissingName(t *testing.T) {
	p := validPlant()
	p.Name = "   "
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestValidate_RejectsUnknownVocabulary(t *testing.T) {
	p := validPlant()
	p.Category = "tree"
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p = validPlant()
	p.CareLevel = "impossible"
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestValidate_RejectsMalformedDates(t *testing.T) {
	p := validPlant()
	p.LastWatered = "05/01/2024"
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p = validPlant()
	p.NextWatering = "2024-13-40"
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}

func TestVocabulary(t *testing.T) {
	assert.True(t, ValidCategory(CategoryFern))
	assert.False(t, ValidCategory("Fern"))
	assert.True(t, ValidCareLevel(CareLevelDifficult))
	assert.False(t, ValidCareLevel(""))
}
