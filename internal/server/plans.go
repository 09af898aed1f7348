package server

import (
	"net/http"

	"github.com/etiquetou/etiquetou/internal/plan"
	"github.com/gin-gonic/gin"
)

type planInfo struct {
	Tier            plan.Tier `json:"tier"`
	PriceBRL        float64   `json:"price_brl"`
	MaxLabels       *int      `json:"max_labels"`
	MaxIntegrations int       `json:"max_integrations"`
	BatchSize       int       `json:"batch_size"`
}

// ListPlans returns the static tier table for the pricing page.
func (s *Server) ListPlans(c *gin.Context) {
	plans := make([]planInfo, 0, len(plan.Tiers()))
	for _, tier := range plan.Tiers() {
		limits, err := plan.LimitsFor(tier)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		price, err := plan.Price(tier)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		info := planInfo{
			Tier:            tier,
			PriceBRL:        price,
			MaxIntegrations: limits.MaxIntegrations,
			BatchSize:       limits.BatchSize,
		}
		if !limits.LabelsUnbounded {
			maxLabels := limits.MaxLabels
			info.MaxLabels = &maxLabels
		}
		plans = append(plans, info)
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
