package classifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk/internal/domains/event/model"
)

// Record is one operational event parsed into its typed variant. The set of
// implementations is closed; payloads that do not match any variant are
// quarantined instead of leaking half-parsed values downstream.
type Record interface {
	Source() model.OperationalEvent
	sealed()
}

// Quarantined holds an event whose payload could not be classified, together
// with the reason it was set aside.
type Quarantined struct {
	Event  model.OperationalEvent
	Reason string
}

type record struct {
	event model.OperationalEvent
}

func (r record) Source() model.OperationalEvent { return r.event }
func (r record) sealed()                        {}

type Booking struct {
	record
	RoomID       string          `json:"room_id"`
	GuestName    string          `json:"guest_name"`
	CheckIn      time.Time       `json:"check_in"`
	CheckOut     time.Time       `json:"check_out"`
	RatePerNight decimal.Decimal `json:"rate_per_night"`
	Nights       int             `json:"nights"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	CreditID     string          `json:"credit_id"`
}

type Extension struct {
	record
	BookingID   string    `json:"booking_id"`
	NewCheckOut time.Time `json:"new_check_out"`
}

type Transfer struct {
	record
	BookingID    string    `json:"booking_id"`
	FromRoomID   string    `json:"from_room_id"`
	ToRoomID     string    `json:"to_room_id"`
	TransferDate time.Time `json:"transfer_date"`
}

type Interruption struct {
	record
	BookingID        string    `json:"booking_id"`
	InterruptionDate time.Time `json:"interruption_date"`
	Reason           string    `json:"reason"`
}

type InterruptionCredit struct {
	record
	BookingID       string          `json:"booking_id"`
	RoomID          string          `json:"room_id"`
	CreditRemaining decimal.Decimal `json:"credit_remaining"`
	CanResume       bool            `json:"can_resume"`
}

type Checkout struct {
	record
	BookingID     string          `json:"booking_id"`
	CheckedOutAt  time.Time       `json:"checked_out_at"`
	TotalCharges  decimal.Decimal `json:"total_charges"`
	TotalPayments decimal.Decimal `json:"total_payments"`
}

type Reservation struct {
	record
	RoomID    string    `json:"room_id"`
	GuestName string    `json:"guest_name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

const (
	ConditionClean       = "clean"
	ConditionCleaned     = "cleaned"
	ConditionInspected   = "inspected"
	ConditionDirty       = "dirty"
	ConditionMaintenance = "maintenance"
)

type Housekeeping struct {
	record
	RoomID     string    `json:"room_id"`
	Condition  string    `json:"condition"`
	ReportedAt time.Time `json:"reported_at"`
}

type Payment struct {
	record
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

type Penalty struct {
	record
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

type Discount struct {
	record
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

type Refund struct {
	record
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreditID  string          `json:"credit_id"`
}

type Cancellation struct {
	record
	TargetID string `json:"target_id"`
	Reason   string `json:"reason"`
}

type Category struct {
	record
	Name string `json:"name"`
}

type Collection struct {
	record
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

type Item struct {
	record
	Name         string          `json:"name"`
	CollectionID string          `json:"collection_id"`
	Price        decimal.Decimal `json:"price"`
}

type Stock struct {
	record
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// Classify parses a single event payload into its typed variant. It is a pure
// mapping: no status or deletion filtering happens here. Missing optional
// fields come back as zero values; a missing required field is an error.
func Classify(ev model.OperationalEvent) (Record, error) {
	switch ev.EntityKind {
	case model.KindBooking:
		r := Booking{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"room_id": r.RoomID != "", "check_in": !r.CheckIn.IsZero(), "check_out": !r.CheckOut.IsZero()}))
	case model.KindExtension:
		r := Extension{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != "", "new_check_out": !r.NewCheckOut.IsZero()}))
	case model.KindTransfer:
		r := Transfer{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != "", "to_room_id": r.ToRoomID != "", "transfer_date": !r.TransferDate.IsZero()}))
	case model.KindInterruption:
		r := Interruption{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != "", "interruption_date": !r.InterruptionDate.IsZero()}))
	case model.KindInterruptionCredit:
		r := InterruptionCredit{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != "", "room_id": r.RoomID != ""}))
	case model.KindCheckout:
		r := Checkout{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != ""}))
	case model.KindReservation:
		r := Reservation{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"room_id": r.RoomID != "", "start": !r.Start.IsZero(), "end": !r.End.IsZero()}))
	case model.KindHousekeeping:
		r := Housekeeping{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"room_id": r.RoomID != "", "condition": r.Condition != ""}))
	case model.KindPayment:
		r := Payment{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != ""}))
	case model.KindPenalty:
		r := Penalty{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != ""}))
	case model.KindDiscount:
		r := Discount{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != ""}))
	case model.KindRefund:
		r := Refund{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"booking_id": r.BookingID != ""}))
	case model.KindCancellation:
		r := Cancellation{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"target_id": r.TargetID != ""}))
	case model.KindCategory:
		r := Category{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"name": r.Name != ""}))
	case model.KindCollection:
		r := Collection{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"name": r.Name != ""}))
	case model.KindItem:
		r := Item{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"name": r.Name != ""}))
	case model.KindStock:
		r := Stock{record: record{ev}}
		if err := decode(ev, &r); err != nil {
			return nil, err
		}

		return checked(r, require(ev, map[string]bool{"item_id": r.ItemID != ""}))
	default:
		return nil, fmt.Errorf("unknown entity kind %q", ev.EntityKind)
	}
}

// ClassifyAll maps a batch of events, splitting off quarantined records so a
// single malformed payload never aborts a derivation pass.
func ClassifyAll(events []model.OperationalEvent) ([]Record, []Quarantined) {
	records := make([]Record, 0, len(events))

	var quarantined []Quarantined

	for _, ev := range events {
		rec, err := Classify(ev)
		if err != nil {
			quarantined = append(quarantined, Quarantined{Event: ev, Reason: err.Error()})

			continue
		}

		records = append(records, rec)
	}

	return records, quarantined
}

// BookingRef returns the booking event id a record belongs to, or the empty
// string for records that stand on their own.
func BookingRef(r Record) string {
	switch rec := r.(type) {
	case Extension:
		return rec.BookingID
	case Transfer:
		return rec.BookingID
	case Interruption:
		return rec.BookingID
	case InterruptionCredit:
		return rec.BookingID
	case Checkout:
		return rec.BookingID
	case Payment:
		return rec.BookingID
	case Penalty:
		return rec.BookingID
	case Discount:
		return rec.BookingID
	case Refund:
		return rec.BookingID
	default:
		return ""
	}
}

func checked(r Record, err error) (Record, error) {
	if err != nil {
		return nil, err
	}

	return r, nil
}

func decode(ev model.OperationalEvent, into any) error {
	if len(ev.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(ev.Payload, into); err != nil {
		return fmt.Errorf("malformed %s payload: %w", ev.EntityKind, err)
	}

	return nil
}

func require(ev model.OperationalEvent, fields map[string]bool) error {
	for name, present := range fields {
		if !present {
			return fmt.Errorf("%s payload missing required field %q", ev.EntityKind, name)
		}
	}

	return nil
}
