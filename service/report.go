package service

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/Aashish23092/drive-decision/utils"
)

// RenderReport formats a completed analysis for the driver.
func RenderReport(est dto.TripEstimate, fare dto.FareBreakdown, metrics []dto.OfferMetrics, rec dto.Recommendation, s dto.SettingsSnapshot) string {
	var b strings.Builder

	if est.Degraded() {
		b.WriteString("Pickup: n/a (single leg found)\n")
	} else {
		fmt.Fprintf(&b, "Pickup: %s\n", legText(est.Pickup))
	}
	fmt.Fprintf(&b, "Trip: %s\n", legText(est.Trip))
	fmt.Fprintf(&b, "Total: %s | %s (%.1f km/h)\n",
		utils.FormatDuration(est.TotalSeconds()), utils.FormatDistance(est.TotalMeters()), fare.AvgSpeedKmh)

	fmt.Fprintf(&b, "Cost: fuel %s (%.1f km/L) + other %s = %s\n",
		utils.FormatMoney(fare.FuelCost), fare.EffectiveKmPerL, utils.FormatMoney(fare.WearCost), utils.FormatMoney(fare.VariableCost))
	fmt.Fprintf(&b, "Target: %s/h net", utils.FormatMoney(s.MinNetPerHour))
	if s.FeePct > 0 {
		fmt.Fprintf(&b, ", fee %.1f%%", s.FeePct)
	}
	b.WriteString("\n")

	if len(metrics) == 0 {
		b.WriteString("No offers found\n")
	}
	for _, m := range metrics {
		b.WriteString(offerLine(m))
		b.WriteString("\n")
	}

	b.WriteString(recommendationLine(rec))
	return b.String()
}

// RenderInsufficientReport explains why no estimate could be made.
func RenderInsufficientReport(reason string, offers []dto.Offer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "No time-distance reading: %s\n", reason)
	if len(offers) > 0 {
		amounts := make([]string, 0, len(offers))
		for _, o := range offers {
			amounts = append(amounts, fmt.Sprintf("%s %s", o.Label(), utils.FormatMoney(o.Amount)))
		}
		fmt.Fprintf(&b, "Offers seen: %s\n", strings.Join(amounts, ", "))
	}
	b.WriteString("Recommendation: need clearer capture")
	return b.String()
}

func legText(td dto.TimeDistance) string {
	return utils.FormatDuration(td.Seconds) + " | " + utils.FormatDistance(td.Meters)
}

func offerLine(m dto.OfferMetrics) string {
	marker := "[fail]"
	if m.MeetsTarget {
		marker = "[ok]"
	}
	line := fmt.Sprintf("%s %s %s -> net %s | %s/h | %s/km",
		marker, m.Offer.Label(), utils.FormatMoney(m.Gross), utils.FormatMoney(m.Net),
		utils.FormatMoney(m.NetPerHour), utils.FormatMoney(m.GrossPerKmTrip))
	if m.Fee > 0 {
		line += " (fee " + utils.FormatMoney(m.Fee) + ")"
	}
	return line
}

func recommendationLine(rec dto.Recommendation) string {
	switch rec.Decision {
	case dto.DecisionAccept:
		return "Recommendation: ACCEPT passenger offer " + utils.FormatMoney(rec.Offer.Amount)
	case dto.DecisionCounter:
		return "Recommendation: COUNTER with " + utils.FormatMoney(rec.Offer.Amount)
	case dto.DecisionMinimumPrice:
		if rec.RequiredGross > 0 {
			return "Recommendation: ask at least " + utils.FormatMoney(rec.RequiredGross)
		}
		return "Recommendation: " + rec.Reason
	}
	return "Recommendation: need clearer capture"
}
