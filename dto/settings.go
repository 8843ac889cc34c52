package dto

// Defaults used when the driver has not configured a value.
const (
	DefaultFuelPrice      = 24.0
	DefaultCityKmPerL     = 10.0
	DefaultHwyKmPerL      = 14.0
	DefaultMinNetPerHour  = 90.0
	DefaultOtherCostPerKm = 0.0
	DefaultFeePct         = 0.0

	minKmPerL = 1.0
)

// SettingsSnapshot is the read-only driver configuration for one analysis pass.
type SettingsSnapshot struct {
	FuelPrice      float64 `json:"fuel_price" mapstructure:"fuel_price" binding:"gte=0"`
	CityKmPerL     float64 `json:"city_km_per_l" mapstructure:"city_km_per_l" binding:"gte=0"`
	HwyKmPerL      float64 `json:"hwy_km_per_l" mapstructure:"hwy_km_per_l" binding:"gte=0"`
	MinNetPerHour  float64 `json:"min_net_per_hour" mapstructure:"min_net_per_hour" binding:"gte=0"`
	OtherCostPerKm float64 `json:"other_cost_per_km" mapstructure:"other_cost_per_km" binding:"gte=0"`
	FeePct         float64 `json:"fee_pct" mapstructure:"fee_pct" binding:"gte=0,lte=100"`
}

// DefaultSettings returns the factory settings.
func DefaultSettings() SettingsSnapshot {
	return SettingsSnapshot{
		FuelPrice:      DefaultFuelPrice,
		CityKmPerL:     DefaultCityKmPerL,
		HwyKmPerL:      DefaultHwyKmPerL,
		MinNetPerHour:  DefaultMinNetPerHour,
		OtherCostPerKm: DefaultOtherCostPerKm,
		FeePct:         DefaultFeePct,
	}
}

// Clamp returns a copy with every field forced into its sane range.
// Fuel efficiency is at least 1 km/L, the fee is within [0,100] and
// money values are never negative.
func (s SettingsSnapshot) Clamp() SettingsSnapshot {
	s.FuelPrice = atLeast(s.FuelPrice, 0)
	s.CityKmPerL = atLeast(s.CityKmPerL, minKmPerL)
	s.HwyKmPerL = atLeast(s.HwyKmPerL, minKmPerL)
	s.MinNetPerHour = atLeast(s.MinNetPerHour, 0)
	s.OtherCostPerKm = atLeast(s.OtherCostPerKm, 0)
	s.FeePct = atLeast(s.FeePct, 0)
	if s.FeePct > 100 {
		s.FeePct = 100
	}
	return s
}

func atLeast(v, floor float64) float64 {
	// NaN compares false everywhere, treat it as unset
	if v != v || v < floor {
		return floor
	}
	return v
}
