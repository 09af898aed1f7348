// Package plan holds the subscription tier ceilings that gate batch
// printing, integration connections and label generation.
package plan

import "errors"

// Tier is a named subscription level.
type Tier string

const (
	TierFree       Tier = "free"
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// ErrInvalidTier reports a tier outside the enumerated set. Callers always
// obtain tiers from persisted users, so hitting this is a programming error.
var ErrInvalidTier = errors.New("invalid_tier")

// Limits are the per-tier usage ceilings. MaxLabels counts labels per billing
// period and is unbounded when LabelsUnbounded is set.
type Limits struct {
	MaxLabels       int
	LabelsUnbounded bool
	MaxIntegrations int
	BatchSize       int
}

var limits = map[Tier]Limits{
	TierFree:       {MaxLabels: 10, MaxIntegrations: 1, BatchSize: 5},
	TierStarter:    {MaxLabels: 100, MaxIntegrations: 10, BatchSize: 50},
	TierPro:        {LabelsUnbounded: true, MaxIntegrations: 100, BatchSize: 500},
	TierEnterprise: {LabelsUnbounded: true, MaxIntegrations: 1000, BatchSize: 10000},
}

// Monthly display prices in BRL. Billing itself is handled elsewhere.
var prices = map[Tier]float64{
	TierFree:       0,
	TierStarter:    19.90,
	TierPro:        49.90,
	TierEnterprise: 149.90,
}

// Tiers lists the known tiers from cheapest to most expensive.
func Tiers() []Tier {
	return []Tier{TierFree, TierStarter, TierPro, TierEnterprise}
}

// Valid reports whether t is one of the enumerated tiers.
func Valid(t Tier) bool {
	_, ok := limits[t]
	return ok
}

// LimitsFor returns the ceiling table entry for t.
func LimitsFor(t Tier) (Limits, error) {
	l, ok := limits[t]
	if !ok {
		return Limits{}, ErrInvalidTier
	}
	return l, nil
}

// BatchSizeLimit returns the maximum number of orders in one print batch.
func BatchSizeLimit(t Tier) (int, error) {
	l, err := LimitsFor(t)
	if err != nil {
		return 0, err
	}
	return l.BatchSize, nil
}

// IntegrationLimit returns the maximum simultaneous active integrations.
func IntegrationLimit(t Tier) (int, error) {
	l, err := LimitsFor(t)
	if err != nil {
		return 0, err
	}
	return l.MaxIntegrations, nil
}

// LabelQuota returns the label ceiling per billing period. bounded is false
// for tiers with no label ceiling, in which case quota is meaningless.
func LabelQuota(t Tier) (quota int, bounded bool, err error) {
	l, err := LimitsFor(t)
	if err != nil {
		return 0, false, err
	}
	return l.MaxLabels, !l.LabelsUnbounded, nil
}

// CanSelectBatch reports whether a print batch of requested size is allowed.
func CanSelectBatch(t Tier, requested int) (bool, error) {
	limit, err := BatchSizeLimit(t)
	if err != nil {
		return false, err
	}
	return requested > 0 && requested <= limit, nil
}

// CanAddIntegration reports whether one more active integration fits the tier.
func CanAddIntegration(t Tier, currentActive int) (bool, error) {
	limit, err := IntegrationLimit(t)
	if err != nil {
		return false, err
	}
	return currentActive < limit, nil
}

// CanGenerateLabel reports whether another label fits within the tier's quota
// given the labels already generated this billing period.
func CanGenerateLabel(t Tier, usedThisPeriod int) (bool, error) {
	quota, bounded, err := LabelQuota(t)
	if err != nil {
		return false, err
	}
	if !bounded {
		return true, nil
	}
	return usedThisPeriod < quota, nil
}

// Price returns the monthly display price for t in BRL.
func Price(t Tier) (float64, error) {
	p, ok := prices[t]
	if !ok {
		return 0, ErrInvalidTier
	}
	return p, nil
}
