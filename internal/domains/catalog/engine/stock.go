package engine

import (
	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
)

// CurrentStock sums the signed quantities of approved, live stock events per
// item. Items with no stock events simply do not appear; callers treat a
// missing entry as zero rather than failing.
func CurrentStock(records []classifier.Record) map[string]int {
	levels := map[string]int{}

	for _, rec := range records {
		tx, ok := rec.(classifier.Stock)
		if !ok {
			continue
		}

		ev := tx.Source()
		if !ev.Live() || ev.Status != model.StatusApproved {
			continue
		}

		levels[tx.ItemID] += tx.Quantity
	}

	return levels
}
