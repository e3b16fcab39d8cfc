package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"frontdesk/internal/domains/event/classifier"
	"frontdesk/internal/domains/event/model"
)

const (
	BucketDay   = "day"
	BucketMonth = "month"
)

// RevenueBucket is one time bucket of settled checkout revenue.
type RevenueBucket struct {
	Period    string          `json:"period"`
	Revenue   decimal.Decimal `json:"revenue"`
	Checkouts int             `json:"checkouts"`
}

// ReduceRevenue buckets approved checkout events by day or month of checkout.
// Revenue per checkout is the settled charge total recorded on the event.
func ReduceRevenue(records []classifier.Record, bucket string) []RevenueBucket {
	layout := "2006-01-02"
	if bucket == BucketMonth {
		layout = "2006-01"
	}

	byPeriod := map[string]*RevenueBucket{}

	for _, rec := range records {
		co, ok := rec.(classifier.Checkout)
		if !ok {
			continue
		}

		ev := co.Source()
		if !ev.Live() || ev.Status != model.StatusApproved {
			continue
		}

		at := co.CheckedOutAt
		if at.IsZero() {
			at = ev.CreatedAt
		}

		period := at.Format(layout)

		b := byPeriod[period]
		if b == nil {
			b = &RevenueBucket{Period: period, Revenue: decimal.Zero}
			byPeriod[period] = b
		}

		b.Revenue = b.Revenue.Add(co.TotalCharges)
		b.Checkouts++
	}

	buckets := make([]RevenueBucket, 0, len(byPeriod))
	for _, b := range byPeriod {
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Period < buckets[j].Period })

	return buckets
}
