package hideout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

func TestComputeNeeds(t *testing.T) {
	tests := []struct {
		name                                      string
		total, reqFir, haveNonFir, haveFir        int
		wantNeededFir, wantNeededNonFir, wantHave int
		wantReserved                              int
	}{
		{"nothing owned", 10, 4, 0, 0, 4, 6, 0, 0},
		{"fir stock spent on fir demand first", 10, 4, 0, 4, 0, 6, 4, 4},
		{"leftover fir fills non-fir demand", 10, 2, 0, 5, 0, 5, 5, 2},
		{"non-fir stock cannot fill fir demand", 5, 5, 10, 0, 5, 0, 0, 0},
		{"surplus stock", 3, 1, 10, 10, 0, 0, 3, 1},
		{"no demand", 0, 0, 4, 4, 0, 0, 0, 0},
		{"mixed stock", 10, 3, 4, 5, 0, 1, 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needs, err := hideout.ComputeNeeds(tt.total, tt.reqFir, tt.haveNonFir, tt.haveFir)

			require.NoError(t, err)
			assert.Equal(t, tt.wantNeededFir, needs.NeededFir, "neededFir")
			assert.Equal(t, tt.wantNeededNonFir, needs.NeededNonFir, "neededNonFir")
			assert.Equal(t, tt.wantHave, needs.EffectiveHave, "effectiveHave")
			assert.Equal(t, tt.wantReserved, needs.HaveFirReserved, "haveFirReserved")
			assert.Equal(t, needs.NeededFir+needs.NeededNonFir, needs.NeededTotal)
			assert.LessOrEqual(t, needs.NeededTotal, needs.TotalRequired)
		})
	}
}

func TestComputeNeeds_MonotonicInStock(t *testing.T) {
	for total := 0; total <= 8; total++ {
		for reqFir := 0; reqFir <= total; reqFir++ {
			for haveNonFir := 0; haveNonFir <= 6; haveNonFir++ {
				prev, err := hideout.ComputeNeeds(total, reqFir, haveNonFir, 0)
				require.NoError(t, err)

				for haveFir := 1; haveFir <= 10; haveFir++ {
					cur, err := hideout.ComputeNeeds(total, reqFir, haveNonFir, haveFir)
					require.NoError(t, err)
					assert.LessOrEqual(t, cur.NeededFir, prev.NeededFir)
					assert.LessOrEqual(t, cur.NeededNonFir, prev.NeededNonFir)
					prev = cur
				}
			}
		}
	}
}

func TestComputeNeeds_NonFirStockNeverAffectsFirNeed(t *testing.T) {
	base, err := hideout.ComputeNeeds(10, 6, 0, 2)
	require.NoError(t, err)

	more, err := hideout.ComputeNeeds(10, 6, 100, 2)
	require.NoError(t, err)

	assert.Equal(t, base.NeededFir, more.NeededFir)
	assert.Equal(t, 0, more.NeededNonFir)
}

func TestComputeNeeds_ContractViolations(t *testing.T) {
	tests := []struct {
		name                               string
		total, reqFir, haveNonFir, haveFir int
		argument                           string
	}{
		{"fir above total", 3, 4, 0, 0, "requiredFir"},
		{"negative total", -1, 0, 0, 0, "totalRequired"},
		{"negative fir requirement", 1, -1, 0, 0, "requiredFir"},
		{"negative stock", 1, 0, -2, 0, "haveNonFir"},
		{"negative fir stock", 1, 0, 0, -2, "haveFir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hideout.ComputeNeeds(tt.total, tt.reqFir, tt.haveNonFir, tt.haveFir)

			var violation *hideout.ContractViolationError
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, tt.argument, violation.Argument)
		})
	}
}
