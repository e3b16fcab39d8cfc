package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/domains/catalog/engine"
	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
	gModel "frontdesk/shared/model"
)

func makeEvent(t *testing.T, id, root, kind, status string, version int, createdAt time.Time, payload string) classifier.Record {
	t.Helper()

	ev := model.OperationalEvent{
		ID:            id,
		LineageRootID: root,
		VersionNo:     version,
		EntityKind:    kind,
		Status:        status,
		Payload:       json.RawMessage(payload),
		Metadata: gModel.Metadata{
			CreatedAt: createdAt,
		},
	}

	rec, err := classifier.Classify(ev)
	assert.NoError(t, err)

	return rec
}

func TestResolveCurrent_LatestVersionWins(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []classifier.Record{
		makeEvent(t, "ev-3", "cat-a", model.KindCategory, model.StatusApproved, 3, base.Add(2*time.Hour), `{"name": "Beverages"}`),
		makeEvent(t, "ev-1", "cat-a", model.KindCategory, model.StatusApproved, 1, base, `{"name": "Drinks"}`),
		makeEvent(t, "ev-2", "cat-a", model.KindCategory, model.StatusApproved, 2, base.Add(time.Hour), `{"name": "Drinks & Snacks"}`),
	}

	winners := engine.ResolveCurrent(records, model.KindCategory)

	assert.Len(t, winners, 1)
	assert.Equal(t, "ev-3", winners[0].Source().ID)
	assert.Equal(t, "Beverages", winners[0].(classifier.Category).Name)
}

func TestResolveCurrent_OnePerEntitySortedByRoot(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []classifier.Record{
		makeEvent(t, "ev-1", "item-b", model.KindItem, model.StatusApproved, 1, base, `{"name": "Sparkling Water", "price": "25000"}`),
		makeEvent(t, "ev-2", "item-a", model.KindItem, model.StatusApproved, 1, base, `{"name": "Orange Juice", "price": "30000"}`),
	}

	winners := engine.ResolveCurrent(records, model.KindItem)

	assert.Len(t, winners, 2)
	assert.Equal(t, "item-a", winners[0].Source().Root())
	assert.Equal(t, "item-b", winners[1].Source().Root())
}

func TestResolveCurrent_FiltersStatusKindAndDeletion(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deletedAt := base.Add(time.Hour)

	deletedEvent := model.OperationalEvent{
		ID:            "ev-3",
		LineageRootID: "cat-c",
		VersionNo:     1,
		EntityKind:    model.KindCategory,
		Status:        model.StatusApproved,
		Payload:       json.RawMessage(`{"name": "Removed"}`),
		DeletedAt:     &deletedAt,
		Metadata:      gModel.Metadata{CreatedAt: base},
	}
	deleted, err := classifier.Classify(deletedEvent)
	assert.NoError(t, err)

	records := []classifier.Record{
		makeEvent(t, "ev-1", "cat-a", model.KindCategory, model.StatusApproved, 1, base, `{"name": "Snacks"}`),
		makeEvent(t, "ev-2", "cat-b", model.KindCategory, model.StatusPending, 1, base, `{"name": "Draft"}`),
		deleted,
		makeEvent(t, "ev-4", "col-a", model.KindCollection, model.StatusApproved, 1, base, `{"name": "Minibar", "category_id": "cat-a"}`),
	}

	winners := engine.ResolveCurrent(records, model.KindCategory)

	assert.Len(t, winners, 1)
	assert.Equal(t, "cat-a", winners[0].Source().Root())
}

func TestResolveCurrent_VersionTieBreaksOnCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []classifier.Record{
		makeEvent(t, "ev-1", "item-a", model.KindItem, model.StatusApproved, 2, base.Add(time.Minute), `{"name": "Correct", "price": "1000"}`),
		makeEvent(t, "ev-2", "item-a", model.KindItem, model.StatusApproved, 2, base, `{"name": "Stale", "price": "1000"}`),
	}

	winners := engine.ResolveCurrent(records, model.KindItem)

	assert.Len(t, winners, 1)
	assert.Equal(t, "ev-1", winners[0].Source().ID)
}

func TestCurrentStock(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []classifier.Record{
		makeEvent(t, "ev-1", "st-1", model.KindStock, model.StatusApproved, 1, base, `{"item_id": "item-a", "quantity": 10, "note": "restock"}`),
		makeEvent(t, "ev-2", "st-2", model.KindStock, model.StatusApproved, 1, base, `{"item_id": "item-a", "quantity": -3, "note": "sold"}`),
		makeEvent(t, "ev-3", "st-3", model.KindStock, model.StatusApproved, 1, base, `{"item_id": "item-b", "quantity": 4}`),
		makeEvent(t, "ev-4", "st-4", model.KindStock, model.StatusPending, 1, base, `{"item_id": "item-a", "quantity": 100}`),
	}

	levels := engine.CurrentStock(records)

	assert.Equal(t, 7, levels["item-a"])
	assert.Equal(t, 4, levels["item-b"])

	// Items without stock events are simply absent.
	_, ok := levels["item-c"]
	assert.False(t, ok)
}
