package dto

import "image"

// OCRLine is one recognized text line with its bounding box in source-bitmap pixels.
type OCRLine struct {
	Text string          `json:"text"`
	Rect image.Rectangle `json:"-"`
	Box  *LineBox        `json:"box,omitempty"`
}

// LineBox is the wire form of a line's bounding box.
type LineBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Bounds returns the line rectangle, preferring the wire box when present.
func (l OCRLine) Bounds() image.Rectangle {
	if l.Box != nil {
		return image.Rect(l.Box.Left, l.Box.Top, l.Box.Right, l.Box.Bottom)
	}
	return l.Rect
}

// Token is a single OCR line that carried at least one quantity.
type Token struct {
	Rect    image.Rectangle
	Text    string
	Seconds int
	Meters  int
	HasTime bool
	HasDist bool
}

// TimeDistance is a duration + distance reading.
type TimeDistance struct {
	Seconds int `json:"seconds"`
	Meters  int `json:"meters"`
}

// IsZero reports whether no measurement is present.
func (td TimeDistance) IsZero() bool {
	return td.Seconds == 0 && td.Meters == 0
}

// Km returns the distance in kilometers.
func (td TimeDistance) Km() float64 {
	return float64(td.Meters) / 1000
}

// TDCandidate is one time-distance reading located on screen.
type TDCandidate struct {
	Rect       image.Rectangle `json:"-"`
	Box        LineBox         `json:"box"`
	TD         TimeDistance    `json:"td"`
	Provenance string          `json:"provenance"`
}

// Area returns the bounding box area in px².
func (c TDCandidate) Area() int {
	return c.Rect.Dx() * c.Rect.Dy()
}

// Center returns the bounding box center.
func (c TDCandidate) Center() image.Point {
	return image.Pt((c.Rect.Min.X+c.Rect.Max.X)/2, (c.Rect.Min.Y+c.Rect.Max.Y)/2)
}

// TripEstimate holds the pickup and trip legs. Pickup is zero in degraded mode.
type TripEstimate struct {
	Pickup TimeDistance `json:"pickup"`
	Trip   TimeDistance `json:"trip"`
}

// TotalSeconds is pickup plus trip duration.
func (e TripEstimate) TotalSeconds() int {
	return e.Pickup.Seconds + e.Trip.Seconds
}

// TotalMeters is pickup plus trip distance.
func (e TripEstimate) TotalMeters() int {
	return e.Pickup.Meters + e.Trip.Meters
}

// Degraded reports whether only a single leg was available.
func (e TripEstimate) Degraded() bool {
	return e.Pickup.IsZero()
}

// OfferKind distinguishes the passenger's own offer from counteroffers.
type OfferKind string

const (
	OfferPassenger OfferKind = "passenger"
	OfferCounter   OfferKind = "counter"
)

// Offer is a monetary amount found in the accessibility dump.
type Offer struct {
	Amount float64   `json:"amount"`
	Kind   OfferKind `json:"kind"`
}

// Label renders the offer label used in reports.
func (o Offer) Label() string {
	if o.Kind == OfferPassenger {
		return "passenger offer"
	}
	return "counter"
}

// FareBreakdown is the per-trip cost side of the calculation.
type FareBreakdown struct {
	TotalHours      float64 `json:"total_hours"`
	AvgSpeedKmh     float64 `json:"avg_speed_kmh"`
	EffectiveKmPerL float64 `json:"effective_km_per_l"`
	FuelCost        float64 `json:"fuel_cost"`
	WearCost        float64 `json:"wear_cost"`
	VariableCost    float64 `json:"variable_cost"`
}

// OfferMetrics is the financial outcome of accepting one offer.
type OfferMetrics struct {
	Offer          Offer   `json:"offer"`
	Gross          float64 `json:"gross"`
	Fee            float64 `json:"fee"`
	Net            float64 `json:"net"`
	NetPerHour     float64 `json:"net_per_hour"`
	GrossPerKmTrip float64 `json:"gross_per_km_trip"`
	MeetsTarget    bool    `json:"meets_target"`
}

// Decision is the outcome class of a recommendation.
type Decision string

const (
	DecisionAccept       Decision = "accept"
	DecisionCounter      Decision = "counter"
	DecisionMinimumPrice Decision = "minimum_price"
	DecisionInsufficient Decision = "insufficient_data"
)

// Recommendation is the final verdict for one analysis.
type Recommendation struct {
	Decision      Decision `json:"decision"`
	Offer         *Offer   `json:"offer,omitempty"`
	RequiredGross float64  `json:"required_gross,omitempty"`
	Reason        string   `json:"reason"`
}

// BoxReading is the text recognized inside one colored screen box.
type BoxReading struct {
	Color   string       `json:"color"`
	Box     LineBox      `json:"box"`
	Text    string       `json:"text"`
	Display string       `json:"display"`
	TD      TimeDistance `json:"td"`
}

// BoxFromRect converts a rectangle to its wire form.
func BoxFromRect(r image.Rectangle) LineBox {
	return LineBox{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}
