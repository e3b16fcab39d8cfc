package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	eventMocks "frontdesk/internal/domains/event/mocks"
	eventModel "frontdesk/internal/domains/event/model"
	eventDto "frontdesk/internal/domains/event/model/dto"
	writerMocks "frontdesk/internal/domains/event/service/mocks"
	"frontdesk/internal/domains/ledger/engine"
	"frontdesk/internal/domains/ledger/model/dto"
	"frontdesk/internal/domains/ledger/service"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/constant"
	gModel "frontdesk/shared/model"
)

type ledgerMocks struct {
	events *eventMocks.MockEvent
	writer *writerMocks.MockEvent
	cache  *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Ledger, ledgerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := ledgerMocks{
		events: eventMocks.NewMockEvent(ctrl),
		writer: writerMocks.NewMockEvent(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	svc := service.New(m.events, m.writer, &config.Config{}, m.cache, mocks.NewOtel())

	return svc, m
}

func staffContext(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func lineageEvents() []eventModel.OperationalEvent {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	return []eventModel.OperationalEvent{
		{
			ID:         "root-1",
			VersionNo:  1,
			EntityKind: eventModel.KindBooking,
			Status:     eventModel.StatusApproved,
			Payload:    json.RawMessage(`{"room_id": "room-101", "guest_name": "Alice", "check_in": "2026-03-01T14:00:00Z", "check_out": "2026-03-04T12:00:00Z", "rate_per_night": "10000", "nights": 3}`),
			Metadata:   gModel.Metadata{CreatedAt: base},
		},
		{
			ID:            "ev-2",
			LineageRootID: "root-1",
			VersionNo:     1,
			EntityKind:    eventModel.KindPayment,
			Status:        eventModel.StatusApproved,
			Payload:       json.RawMessage(`{"booking_id": "root-1", "amount": "10000", "method": "cash"}`),
			Metadata:      gModel.Metadata{CreatedAt: base.Add(time.Hour)},
		},
	}
}

func TestLedgerService_Summary(t *testing.T) {
	t.Run("cache hit skips recomputation", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), "ledger:summary:root-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				out := value.(*engine.LedgerSummary)
				out.TotalCharges = decimal.NewFromInt(30000)
				out.TotalPayments = decimal.NewFromInt(10000)
				out.Balance = decimal.NewFromInt(20000)

				return nil
			})

		summary, err := svc.Summary(context.Background(), "root-1")

		assert.NoError(t, err)
		assert.True(t, summary.Balance.Equal(decimal.NewFromInt(20000)))
	})

	t.Run("cache miss recomputes and saves", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), "ledger:summary:root-1", gomock.Any()).
			Return(errors.New("cache miss"))

		m.events.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(lineageEvents(), nil)

		m.cache.EXPECT().
			Save(gomock.Any(), "ledger:summary:root-1", gomock.Any(), gomock.Any()).
			Return(nil)

		summary, err := svc.Summary(context.Background(), "root-1")

		assert.NoError(t, err)
		assert.True(t, summary.TotalCharges.Equal(decimal.NewFromInt(30000)))
		assert.True(t, summary.TotalPayments.Equal(decimal.NewFromInt(10000)))
		assert.True(t, summary.Balance.Equal(decimal.NewFromInt(20000)))
	})

	t.Run("unknown lineage", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		m.events.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]eventModel.OperationalEvent{}, nil)

		_, err := svc.Summary(context.Background(), "root-404")

		assert.Error(t, err)
	})
}

func TestLedgerService_Entries(t *testing.T) {
	svc, m := newService(t)

	m.events.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(lineageEvents(), nil)

	entries, err := svc.Entries(context.Background(), "root-1")

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, engine.CategoryRoomCharge, entries[0].Category)
	assert.Equal(t, engine.CategoryPayment, entries[1].Category)
}

func TestLedgerService_RecordPayment(t *testing.T) {
	t.Run("appends and resyncs the cached summary", func(t *testing.T) {
		svc, m := newService(t)

		// Once to validate the lineage, once for the post-write resync.
		m.events.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(lineageEvents(), nil).
			Times(2)

		m.writer.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req eventDto.InsertEventRequest) (string, error) {
				assert.Equal(t, eventModel.KindPayment, req.EntityKind)
				assert.Equal(t, "root-1", req.LineageRootID)
				assert.Contains(t, string(req.Payload), `"booking_id":"root-1"`)
				assert.True(t, req.FinancialAmount.Equal(decimal.NewFromInt(20000)))

				return "ev-pay", nil
			})

		m.cache.EXPECT().
			Save(gomock.Any(), "ledger:summary:root-1", gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.RecordPayment(staffContext(constant.RoleFrontDesk), "root-1", dto.RecordEntryRequest{
			Amount: decimal.NewFromInt(20000),
			Method: "cash",
		})

		assert.NoError(t, err)
	})

	t.Run("admin writes land approved", func(t *testing.T) {
		svc, m := newService(t)

		m.events.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(lineageEvents(), nil).
			Times(2)

		m.writer.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return("ev-pay", nil)

		m.writer.EXPECT().
			Approve(gomock.Any(), "ev-pay").
			Return(nil)

		m.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.RecordPayment(staffContext(constant.RoleAdmin), "root-1", dto.RecordEntryRequest{
			Amount: decimal.NewFromInt(5000),
			Method: "card",
		})

		assert.NoError(t, err)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.RecordPayment(staffContext(constant.RoleFrontDesk), "root-1", dto.RecordEntryRequest{
			Amount: decimal.Zero,
		})

		assert.Error(t, err)
	})

	t.Run("no session user", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.RecordPayment(context.Background(), "root-1", dto.RecordEntryRequest{
			Amount: decimal.NewFromInt(1000),
		})

		assert.Error(t, err)
	})
}

func TestLedgerService_Revenue(t *testing.T) {
	t.Run("rejects unknown buckets", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Revenue(context.Background(), "week")

		assert.Error(t, err)
	})

	t.Run("buckets settled checkouts", func(t *testing.T) {
		svc, m := newService(t)

		m.events.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]eventModel.OperationalEvent{
				{
					ID:         "ev-co",
					VersionNo:  1,
					EntityKind: eventModel.KindCheckout,
					Status:     eventModel.StatusApproved,
					Payload:    json.RawMessage(`{"booking_id": "root-1", "checked_out_at": "2026-03-04T11:00:00Z", "total_charges": "300000"}`),
					Metadata:   gModel.Metadata{CreatedAt: time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)},
				},
			}, nil)

		buckets, err := svc.Revenue(context.Background(), engine.BucketDay)

		assert.NoError(t, err)
		assert.Len(t, buckets, 1)
		assert.Equal(t, "2026-03-04", buckets[0].Period)
		assert.True(t, buckets[0].Revenue.Equal(decimal.NewFromInt(300000)))
		assert.Equal(t, 1, buckets[0].Checkouts)
	})
}
