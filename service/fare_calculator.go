package service

import (
	"math"

	"github.com/Aashish23092/drive-decision/dto"
)

// Average-speed ramp for blending city and highway fuel efficiency.
const (
	citySpeedKmh    = 25.0
	highwaySpeedKmh = 55.0
)

// EffectiveKmPerL blends city and highway efficiency by average speed:
// pure city at or below 25 km/h, pure highway at or above 55 km/h.
func EffectiveKmPerL(avgSpeedKmh, cityKmPerL, hwyKmPerL float64) float64 {
	switch {
	case math.IsNaN(avgSpeedKmh) || avgSpeedKmh <= citySpeedKmh:
		return cityKmPerL
	case avgSpeedKmh >= highwaySpeedKmh:
		return hwyKmPerL
	}
	t := (avgSpeedKmh - citySpeedKmh) / (highwaySpeedKmh - citySpeedKmh)
	return cityKmPerL + (hwyKmPerL-cityKmPerL)*t
}

// CalculateFare computes the trip's variable cost and the outcome of every offer.
func CalculateFare(est dto.TripEstimate, s dto.SettingsSnapshot, offers []dto.Offer) (dto.FareBreakdown, []dto.OfferMetrics) {
	totalKm := float64(est.TotalMeters()) / 1000
	fare := dto.FareBreakdown{TotalHours: float64(est.TotalSeconds()) / 3600}

	if fare.TotalHours > 0 {
		fare.AvgSpeedKmh = totalKm / fare.TotalHours
	}
	fare.EffectiveKmPerL = EffectiveKmPerL(fare.AvgSpeedKmh, s.CityKmPerL, s.HwyKmPerL)
	if fare.EffectiveKmPerL > 0 {
		fare.FuelCost = totalKm / fare.EffectiveKmPerL * s.FuelPrice
	}
	fare.WearCost = totalKm * s.OtherCostPerKm
	fare.VariableCost = fare.FuelCost + fare.WearCost

	metrics := make([]dto.OfferMetrics, 0, len(offers))
	for _, o := range offers {
		metrics = append(metrics, offerMetrics(o, est, fare, s))
	}
	return fare, metrics
}

func offerMetrics(o dto.Offer, est dto.TripEstimate, fare dto.FareBreakdown, s dto.SettingsSnapshot) dto.OfferMetrics {
	m := dto.OfferMetrics{Offer: o, Gross: o.Amount}
	m.Fee = m.Gross * s.FeePct / 100
	m.Net = m.Gross - m.Fee - fare.VariableCost
	if fare.TotalHours > 0 {
		m.NetPerHour = m.Net / fare.TotalHours
	}
	// passengers pay for the ride itself, so pickup distance is left out
	if tripKm := est.Trip.Km(); tripKm > 0 {
		m.GrossPerKmTrip = m.Gross / tripKm
	}
	m.MeetsTarget = m.NetPerHour >= s.MinNetPerHour
	return m
}

// RequiredGross is the smallest whole-unit price that reaches the hourly
// target after fees and variable cost. ok is false when the fee leaves
// nothing of the fare.
func RequiredGross(fare dto.FareBreakdown, s dto.SettingsSnapshot) (float64, bool) {
	keep := 1 - s.FeePct/100
	if keep <= 0 {
		return 0, false
	}
	need := (fare.VariableCost + s.MinNetPerHour*fare.TotalHours) / keep
	return math.Ceil(need - 1e-9), true
}
