package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/drive-decision/dto"
)

const (
	currencyToken = `(?:mx\$|mxn|usd|us\$)`
	amountToken   = `(\d+(?:[.,]\d+)?)`
)

var (
	passengerOfferRe = regexp.MustCompile(`(?i)(?:accept\s+for|aceptar\s+por)\s*(?:mx\$|mxn|usd|us\$|\$)\s*` + amountToken)
	currencyAmountRe = regexp.MustCompile(`(?i)` + currencyToken + `\s*` + amountToken)
	dollarAmountRe   = regexp.MustCompile(`\$\s*` + amountToken)
)

// ParseOffers extracts the passenger offer and every counteroffer from an
// accessibility text dump. Offers are unique by amount, in first-seen order;
// the passenger offer, when present, always comes first.
func ParseOffers(text string) []dto.Offer {
	text = strings.Join(DumpLines(text), "\n")

	var offers []dto.Offer
	seen := make(map[float64]bool)

	add := func(raw string, kind dto.OfferKind) {
		amount, ok := parseAmount(raw)
		if !ok || amount <= 0 || seen[amount] {
			return
		}
		seen[amount] = true
		offers = append(offers, dto.Offer{Amount: amount, Kind: kind})
	}

	if m := passengerOfferRe.FindStringSubmatch(text); m != nil {
		add(m[1], dto.OfferPassenger)
	}
	for _, m := range currencyAmountRe.FindAllStringSubmatch(text, -1) {
		add(m[1], dto.OfferCounter)
	}
	for _, m := range dollarAmountRe.FindAllStringSubmatch(text, -1) {
		add(m[1], dto.OfferCounter)
	}

	return offers
}

// PassengerOffer returns the passenger's own offer, if one was found.
func PassengerOffer(offers []dto.Offer) (dto.Offer, bool) {
	for _, o := range offers {
		if o.Kind == dto.OfferPassenger {
			return o, true
		}
	}
	return dto.Offer{}, false
}

// parseAmount treats either separator as decimal, except when exactly three
// digits follow it ("1,250"), which is read as digit grouping.
func parseAmount(raw string) (float64, bool) {
	if i := strings.IndexAny(raw, ".,"); i >= 0 && len(raw)-i-1 == 3 {
		raw = raw[:i] + raw[i+1:]
	}
	return parseDecimal(raw)
}
