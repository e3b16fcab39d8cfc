package engine

import (
	"sort"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
)

// ResolveCurrent collapses a config kind's version chains to one
// representative per logical entity: the approved, non-deleted event with the
// greatest version_no, ties broken by greatest created_at, then by greatest
// id so the winner is total under any input ordering.
func ResolveCurrent(records []classifier.Record, kind string) []classifier.Record {
	byEntity := map[string]classifier.Record{}

	for _, rec := range records {
		ev := rec.Source()
		if ev.EntityKind != kind || !ev.Live() || ev.Status != model.StatusApproved {
			continue
		}

		root := ev.Root()

		current, ok := byEntity[root]
		if !ok || ev.Supersedes(current.Source()) {
			byEntity[root] = rec
		}
	}

	winners := make([]classifier.Record, 0, len(byEntity))
	for _, rec := range byEntity {
		winners = append(winners, rec)
	}

	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Source().Root() < winners[j].Source().Root()
	})

	return winners
}
