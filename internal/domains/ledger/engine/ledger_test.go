package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/ledger/engine"
	stay "frontdesk/internal/domains/stay/engine"
	gModel "frontdesk/shared/model"
)

func makeEvent(t *testing.T, id, root, kind string, createdAt time.Time, payload string) classifier.Record {
	t.Helper()

	ev := model.OperationalEvent{
		ID:            id,
		LineageRootID: root,
		VersionNo:     1,
		EntityKind:    kind,
		Status:        model.StatusApproved,
		Payload:       json.RawMessage(payload),
		Metadata: gModel.Metadata{
			CreatedAt: createdAt,
		},
	}

	rec, err := classifier.Classify(ev)
	assert.NoError(t, err)

	return rec
}

func guestLineage(t *testing.T, extras ...classifier.Record) stay.Lineage {
	t.Helper()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, base,
		`{"room_id": "room-101", "guest_name": "Alice", "check_in": "2026-03-01T14:00:00Z", "check_out": "2026-03-04T12:00:00Z", "rate_per_night": "10000", "nights": 3}`)

	lineages := stay.BuildLineages(append([]classifier.Record{booking}, extras...))
	assert.Len(t, lineages, 1)

	return lineages[0]
}

func TestAggregate_RunningBalance(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	firstPayment := makeEvent(t, "ev-2", "root-a", model.KindPayment, base,
		`{"booking_id": "ev-1", "amount": "10000", "method": "cash"}`)

	lin := guestLineage(t, firstPayment)

	entries, summary := engine.Aggregate(lin)

	// 3 nights at 10000 against a single 10000 payment.
	assert.Len(t, entries, 2)
	assert.True(t, summary.TotalCharges.Equal(decimal.NewFromInt(30000)))
	assert.True(t, summary.TotalPayments.Equal(decimal.NewFromInt(10000)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(20000)))

	secondPayment := makeEvent(t, "ev-3", "root-a", model.KindPayment, base.Add(time.Hour),
		`{"booking_id": "ev-1", "amount": "20000", "method": "card"}`)

	_, settled := engine.Aggregate(guestLineage(t, firstPayment, secondPayment))

	assert.True(t, settled.Balance.IsZero())
}

func TestAggregate_AllCategories(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	lin := guestLineage(t,
		makeEvent(t, "ev-2", "root-a", model.KindPenalty, base,
			`{"booking_id": "ev-1", "amount": "5000", "reason": "smoking"}`),
		makeEvent(t, "ev-3", "root-a", model.KindPayment, base.Add(time.Hour),
			`{"booking_id": "ev-1", "amount": "30000", "method": "cash"}`),
		makeEvent(t, "ev-4", "root-a", model.KindDiscount, base.Add(2*time.Hour),
			`{"booking_id": "ev-1", "amount": "2000", "reason": "loyalty"}`),
		makeEvent(t, "ev-5", "root-a", model.KindRefund, base.Add(3*time.Hour),
			`{"booking_id": "ev-1", "amount": "1000"}`),
	)

	entries, summary := engine.Aggregate(lin)

	assert.Len(t, entries, 5)

	categories := make([]string, 0, len(entries))
	for _, e := range entries {
		categories = append(categories, e.Category)
	}

	assert.Equal(t, []string{
		engine.CategoryRoomCharge,
		engine.CategoryPenalty,
		engine.CategoryPayment,
		engine.CategoryDiscount,
		engine.CategoryRefund,
	}, categories)

	// 30000 + 5000 charges vs 30000 + 2000 + 1000 credits.
	assert.True(t, summary.TotalCharges.Equal(decimal.NewFromInt(35000)))
	assert.True(t, summary.TotalPayments.Equal(decimal.NewFromInt(33000)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(2000)))
}

func TestAggregate_DepositRecordedAsPayment(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	booking := makeEvent(t, "ev-1", "root-a", model.KindBooking, base,
		`{"room_id": "room-101", "check_in": "2026-03-01T14:00:00Z", "check_out": "2026-03-04T12:00:00Z", "rate_per_night": "10000", "nights": 3, "paid_amount": "15000"}`)

	lineages := stay.BuildLineages([]classifier.Record{booking})
	_, summary := engine.Aggregate(lineages[0])

	assert.True(t, summary.TotalPayments.Equal(decimal.NewFromInt(15000)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(15000)))
}

func TestAggregate_FallsBackToFinancialAmountColumn(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ev := model.OperationalEvent{
		ID:              "ev-2",
		LineageRootID:   "root-a",
		VersionNo:       1,
		EntityKind:      model.KindPayment,
		Status:          model.StatusApproved,
		Payload:         json.RawMessage(`{"booking_id": "ev-1", "method": "cash"}`),
		FinancialAmount: decimal.NewFromInt(7500),
		Metadata:        gModel.Metadata{CreatedAt: base},
	}

	payment, err := classifier.Classify(ev)
	assert.NoError(t, err)

	_, summary := engine.Aggregate(guestLineage(t, payment))

	assert.True(t, summary.TotalPayments.Equal(decimal.NewFromInt(7500)))
}

func TestAggregate_Idempotent(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	lin := guestLineage(t,
		makeEvent(t, "ev-2", "root-a", model.KindPayment, base,
			`{"booking_id": "ev-1", "amount": "10000", "method": "cash"}`),
		makeEvent(t, "ev-3", "root-a", model.KindPenalty, base,
			`{"booking_id": "ev-1", "amount": "5000", "reason": "late checkout"}`),
	)

	firstEntries, firstSummary := engine.Aggregate(lin)
	secondEntries, secondSummary := engine.Aggregate(lin)

	assert.Equal(t, firstEntries, secondEntries)
	assert.Equal(t, firstSummary, secondSummary)
}

func TestReduceRevenue(t *testing.T) {
	checkout := func(id, at, charges string) classifier.Record {
		return makeEvent(t, id, "root-"+id, model.KindCheckout, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			`{"booking_id": "ev-`+id+`", "checked_out_at": "`+at+`", "total_charges": "`+charges+`"}`)
	}

	records := []classifier.Record{
		checkout("a", "2026-03-04T11:00:00Z", "300000"),
		checkout("b", "2026-03-04T12:30:00Z", "150000"),
		checkout("c", "2026-04-01T10:00:00Z", "90000"),
	}

	t.Run("daily buckets", func(t *testing.T) {
		buckets := engine.ReduceRevenue(records, engine.BucketDay)

		assert.Len(t, buckets, 2)
		assert.Equal(t, "2026-03-04", buckets[0].Period)
		assert.True(t, buckets[0].Revenue.Equal(decimal.NewFromInt(450000)))
		assert.Equal(t, 2, buckets[0].Checkouts)
		assert.Equal(t, "2026-04-01", buckets[1].Period)
	})

	t.Run("monthly buckets", func(t *testing.T) {
		buckets := engine.ReduceRevenue(records, engine.BucketMonth)

		assert.Len(t, buckets, 2)
		assert.Equal(t, "2026-03", buckets[0].Period)
		assert.Equal(t, "2026-04", buckets[1].Period)
	})

	t.Run("pending checkouts excluded", func(t *testing.T) {
		ev := model.OperationalEvent{
			ID:         "ev-p",
			VersionNo:  1,
			EntityKind: model.KindCheckout,
			Status:     model.StatusPending,
			Payload:    json.RawMessage(`{"booking_id": "ev-x", "checked_out_at": "2026-03-04T11:00:00Z", "total_charges": "100"}`),
			Metadata:   gModel.Metadata{CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		}

		pending, err := classifier.Classify(ev)
		assert.NoError(t, err)

		buckets := engine.ReduceRevenue([]classifier.Record{pending}, engine.BucketDay)

		assert.Empty(t, buckets)
	})

	t.Run("missing checkout time falls back to created_at", func(t *testing.T) {
		created := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
		rec := makeEvent(t, "ev-f", "root-f", model.KindCheckout, created,
			`{"booking_id": "ev-f", "total_charges": "50000"}`)

		buckets := engine.ReduceRevenue([]classifier.Record{rec}, engine.BucketDay)

		assert.Len(t, buckets, 1)
		assert.Equal(t, "2026-05-10", buckets[0].Period)
	})
}
