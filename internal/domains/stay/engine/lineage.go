package engine

import (
	"sort"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
)

// Lineage collects every event belonging to one guest stay: the booking that
// opened it plus the extension, transfer, interruption, financial and checkout
// events recorded against it over time.
type Lineage struct {
	Root    string
	Booking classifier.Booking

	Extensions    []classifier.Extension
	Transfers     []classifier.Transfer
	Interruptions []classifier.Interruption
	Credits       []classifier.InterruptionCredit
	Checkout      *classifier.Checkout

	Payments  []classifier.Payment
	Penalties []classifier.Penalty
	Discounts []classifier.Discount
	Refunds   []classifier.Refund
}

// CheckedOut reports whether the stay has a recorded checkout.
func (l Lineage) CheckedOut() bool { return l.Checkout != nil }

// BuildLineages groups approved, live records into one lineage per booking.
// Grouping follows the lineage root id when set, otherwise the booking id the
// payload references. Ordering of the input does not affect the result.
func BuildLineages(records []classifier.Record) []Lineage {
	byRoot := map[string]*Lineage{}
	byBookingID := map[string]*Lineage{}

	for _, rec := range records {
		booking, ok := rec.(classifier.Booking)
		if !ok || !usable(rec) {
			continue
		}

		root := booking.Source().Root()
		if existing := byRoot[root]; existing != nil && !booking.Source().Supersedes(existing.Booking.Source()) {
			continue
		}

		lin := &Lineage{Root: root, Booking: booking}
		byRoot[root] = lin
		byBookingID[booking.Source().ID] = lin
	}

	for _, rec := range records {
		if !usable(rec) {
			continue
		}

		lin := byRoot[rec.Source().Root()]
		if lin == nil {
			if ref := classifier.BookingRef(rec); ref != "" {
				lin = byBookingID[ref]
			}
		}

		if lin == nil {
			continue
		}

		switch r := rec.(type) {
		case classifier.Extension:
			lin.Extensions = append(lin.Extensions, r)
		case classifier.Transfer:
			lin.Transfers = append(lin.Transfers, r)
		case classifier.Interruption:
			lin.Interruptions = append(lin.Interruptions, r)
		case classifier.InterruptionCredit:
			lin.Credits = append(lin.Credits, r)
		case classifier.Checkout:
			checkout := r
			lin.Checkout = &checkout
		case classifier.Payment:
			lin.Payments = append(lin.Payments, r)
		case classifier.Penalty:
			lin.Penalties = append(lin.Penalties, r)
		case classifier.Discount:
			lin.Discounts = append(lin.Discounts, r)
		case classifier.Refund:
			lin.Refunds = append(lin.Refunds, r)
		}
	}

	lineages := make([]Lineage, 0, len(byRoot))
	for _, lin := range byRoot {
		lineages = append(lineages, *lin)
	}

	sort.Slice(lineages, func(i, j int) bool { return lineages[i].Root < lineages[j].Root })

	return lineages
}

// usable filters to approved (or converted, for credits folded into a resumed
// stay) and non-deleted events.
func usable(rec classifier.Record) bool {
	ev := rec.Source()
	if !ev.Live() {
		return false
	}

	if ev.Status == model.StatusConverted {
		_, isCredit := rec.(classifier.InterruptionCredit)

		return isCredit
	}

	return ev.Status == model.StatusApproved
}
