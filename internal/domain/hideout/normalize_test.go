package hideout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

func intPtr(v int) *int { return &v }

func TestNormalizeItemRequirement_CountFallback(t *testing.T) {
	tests := []struct {
		name     string
		count    *int
		quantity *int
		want     int
	}{
		{"count wins", intPtr(3), intPtr(9), 3},
		{"legacy quantity", nil, intPtr(9), 9},
		{"neither", nil, nil, 0},
		{"negative clamps", intPtr(-2), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := hideout.NormalizeItemRequirement(hideout.RawItemRequirement{
				ID:       "r",
				Count:    tt.count,
				Quantity: tt.quantity,
			})
			assert.Equal(t, tt.want, req.Count)
		})
	}
}

func TestIsFoundInRaid(t *testing.T) {
	assert.True(t, hideout.IsFoundInRaid([]hideout.RawAttribute{
		{Type: "other", Name: "tag", Value: "x"},
		{Type: "itemAttribute", Name: "found_in_raid", Value: "true"},
	}))
	assert.False(t, hideout.IsFoundInRaid([]hideout.RawAttribute{{Name: "found_in_raid", Value: "false"}}))
	assert.False(t, hideout.IsFoundInRaid(nil))
}
