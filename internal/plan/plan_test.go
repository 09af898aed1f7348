package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeilingsIncreaseAcrossTiers(t *testing.T) {
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		prevBatch, err := BatchSizeLimit(tiers[i-1])
		require.NoError(t, err)
		curBatch, err := BatchSizeLimit(tiers[i])
		require.NoError(t, err)
		assert.Greater(t, curBatch, prevBatch, "batch size must increase from %s to %s", tiers[i-1], tiers[i])

		prevInt, err := IntegrationLimit(tiers[i-1])
		require.NoError(t, err)
		curInt, err := IntegrationLimit(tiers[i])
		require.NoError(t, err)
		assert.Greater(t, curInt, prevInt, "integration limit must increase from %s to %s", tiers[i-1], tiers[i])
	}
}

func TestCanSelectBatchBoundaries(t *testing.T) {
	for _, tier := range Tiers() {
		limit, err := BatchSizeLimit(tier)
		require.NoError(t, err)

		ok, err := CanSelectBatch(tier, 0)
		require.NoError(t, err)
		assert.False(t, ok, "%s: empty batch", tier)

		ok, err = CanSelectBatch(tier, 1)
		require.NoError(t, err)
		assert.True(t, ok, "%s: single order", tier)

		ok, err = CanSelectBatch(tier, limit)
		require.NoError(t, err)
		assert.True(t, ok, "%s: at limit", tier)

		ok, err = CanSelectBatch(tier, limit+1)
		require.NoError(t, err)
		assert.False(t, ok, "%s: one over limit", tier)
	}
}

func TestCanSelectBatchFreeTier(t *testing.T) {
	ok, err := CanSelectBatch(TierFree, 6)
	require.NoError(t, err)
	assert.False(t, ok, "free tier caps batches at 5")

	ok, err = CanSelectBatch(TierFree, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAddIntegration(t *testing.T) {
	ok, err := CanAddIntegration(TierFree, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanAddIntegration(TierFree, 1)
	require.NoError(t, err)
	assert.False(t, ok, "free tier allows a single active integration")
}

func TestLabelQuota(t *testing.T) {
	quota, bounded, err := LabelQuota(TierFree)
	require.NoError(t, err)
	assert.True(t, bounded)
	assert.Equal(t, 10, quota)

	_, bounded, err = LabelQuota(TierPro)
	require.NoError(t, err)
	assert.False(t, bounded)

	ok, err := CanGenerateLabel(TierFree, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CanGenerateLabel(TierFree, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanGenerateLabel(TierEnterprise, 1_000_000)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidTier(t *testing.T) {
	_, err := BatchSizeLimit(Tier("gold"))
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, err = IntegrationLimit(Tier(""))
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, _, err = LabelQuota(Tier("premium"))
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, err = Price(Tier("gold"))
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestPrices(t *testing.T) {
	p, err := Price(TierFree)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = Price(TierStarter)
	require.NoError(t, err)
	assert.InDelta(t, 19.90, p, 0.001)
}
