package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type createDTO struct {
	Name  string
	Price float64
	Count int
}

type patchDTO struct {
	Status  *string `json:"status"`
	Records *int    `json:"records_count"`
	Skipped *string `json:"-"`
}

func TestNormalizeDTO(t *testing.T) {
	dto := createDTO{Name: "  Milk ", Price: 9.999, Count: 3}
	NormalizeDTO(&dto)
	assert.Equal(t, "Milk", dto.Name)
	assert.Equal(t, 10.0, dto.Price)
	assert.Equal(t, 3, dto.Count)
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	status := "success"
	records := 7
	skipped := "x"
	got := UpdatesFromPtrDTO(&patchDTO{Status: &status, Records: &records, Skipped: &skipped}, nil)
	assert.Equal(t, map[string]any{"status": "success", "records_count": 7}, got)

	assert.Empty(t, UpdatesFromPtrDTO(&patchDTO{}, nil))
}
