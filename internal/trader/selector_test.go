package trader

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func lotsOf(n int) []Lot {
	lots := make([]Lot, n)
	for i := range lots {
		lots[i] = lot(1, "99", 1)
	}
	return lots
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input    string
		expected Algorithm
		wantErr  bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"Subset", SubsetEnumeration, false},
		{"subset-enumeration", SubsetEnumeration, false},
		{" knapsack ", KnapsackDP, false},
		{"dp", KnapsackDP, false},
		{"greedy", Auto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				require.True(t, errors.Is(err, ErrUnknownAlgorithm))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestAlgorithmText(t *testing.T) {
	for _, alg := range []Algorithm{Auto, SubsetEnumeration, KnapsackDP} {
		text, err := alg.MarshalText()
		require.NoError(t, err)

		var parsed Algorithm
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, alg, parsed)
	}

	_, err := Algorithm(99).MarshalText()
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	require.Equal(t, "Algorithm(99)", Algorithm(99).String())
}

func TestEstimateCost(t *testing.T) {
	inst := Instance{TotalFunds: 1000, Lots: lotsOf(10)}
	require.Equal(t, int64(10*1024), EstimateCost(SubsetEnumeration, inst))
	require.Equal(t, int64(10*1000), EstimateCost(KnapsackDP, inst))
	require.Equal(t, int64(10*1000), EstimateCost(Auto, inst))

	empty := Instance{TotalFunds: 1000}
	require.Zero(t, EstimateCost(SubsetEnumeration, empty))
	require.Zero(t, EstimateCost(KnapsackDP, empty))
}

func TestEstimateCostSaturates(t *testing.T) {
	inst := Instance{TotalFunds: math.MaxInt64 / 2, Lots: lotsOf(70)}
	require.Equal(t, int64(math.MaxInt64), EstimateCost(SubsetEnumeration, inst))
	require.Equal(t, int64(math.MaxInt64), EstimateCost(KnapsackDP, inst))
	// Both saturate: the tie goes to the dynamic program.
	require.Equal(t, KnapsackDP, Select(inst))
}

func TestSelectMatchesEstimates(t *testing.T) {
	fundsLevels := []int64{0, 1, 7, 64, 100, 1000, 4096, 1 << 20, 1 << 40}
	for n := 0; n <= 45; n++ {
		for _, funds := range fundsLevels {
			inst := Instance{TotalFunds: funds, Lots: lotsOf(n)}

			bn := big.NewInt(int64(n))
			dp := new(big.Int).Mul(bn, big.NewInt(funds))
			subset := new(big.Int).Mul(bn, new(big.Int).Lsh(big.NewInt(1), uint(n)))

			expected := SubsetEnumeration
			if dp.Cmp(subset) <= 0 {
				expected = KnapsackDP
			}
			require.Equal(t, expected, Select(inst), "n=%d funds=%d", n, funds)
		}
	}
}

func TestSelectTieFavoursKnapsack(t *testing.T) {
	// 4 lots: 4*2^4 == 4*16.
	inst := Instance{TotalFunds: 16, Lots: lotsOf(4)}
	require.Equal(t, KnapsackDP, Select(inst))

	inst.TotalFunds = 17
	require.Equal(t, SubsetEnumeration, Select(inst))
}
