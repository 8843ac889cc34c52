package service

import (
	"fmt"

	"github.com/Aashish23092/drive-decision/dto"
)

// Recommend decides which offer to take. The passenger offer wins when it
// clears the hourly target; otherwise the cheapest counteroffer that clears
// it; otherwise the minimum acceptable price is reported with no offer.
func Recommend(metrics []dto.OfferMetrics, fare dto.FareBreakdown, s dto.SettingsSnapshot) dto.Recommendation {
	for _, m := range metrics {
		if m.Offer.Kind == dto.OfferPassenger && m.NetPerHour >= s.MinNetPerHour {
			offer := m.Offer
			return dto.Recommendation{
				Decision: dto.DecisionAccept,
				Offer:    &offer,
				Reason:   fmt.Sprintf("passenger offer %.2f nets %.2f/h (target %.2f/h)", m.Gross, m.NetPerHour, s.MinNetPerHour),
			}
		}
	}

	var best *dto.OfferMetrics
	for i := range metrics {
		m := &metrics[i]
		if m.Offer.Kind != dto.OfferCounter || m.NetPerHour < s.MinNetPerHour {
			continue
		}
		if best == nil || m.Gross < best.Gross {
			best = m
		}
	}
	if best != nil {
		offer := best.Offer
		return dto.Recommendation{
			Decision: dto.DecisionCounter,
			Offer:    &offer,
			Reason:   fmt.Sprintf("cheapest counter clearing target: %.2f nets %.2f/h", best.Gross, best.NetPerHour),
		}
	}

	required, ok := RequiredGross(fare, s)
	if !ok {
		return dto.Recommendation{
			Decision: dto.DecisionMinimumPrice,
			Reason:   "fee takes the whole fare, no price reaches the target",
		}
	}
	return dto.Recommendation{
		Decision:      dto.DecisionMinimumPrice,
		RequiredGross: required,
		Reason:        fmt.Sprintf("no offer reaches %.2f/h, ask at least %.0f", s.MinNetPerHour, required),
	}
}
