package analytics

import (
	"fmt"
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// Granularity selects the bucket size for completion trends.
type Granularity string

// Supported granularities.
const (
	GranularityDaily     Granularity = "daily"
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// BucketCount returns the fixed series length for the granularity.
func (g Granularity) BucketCount() int {
	switch g {
	case GranularityDaily:
		return 30
	case GranularityWeekly:
		return 12
	case GranularityMonthly:
		return 12
	case GranularityQuarterly:
		return 4
	default:
		return 0
	}
}

// ParseGranularity validates a granularity flag value.
func ParseGranularity(value string) (Granularity, error) {
	g := Granularity(value)
	if g.BucketCount() == 0 {
		return "", fmt.Errorf("unknown granularity %q (want daily, weekly, monthly, or quarterly)", value)
	}
	return g, nil
}

// TrendPoint is one time bucket in a series. Membership is by
// [PeriodStart, PeriodEnd).
type TrendPoint struct {
	Label       string    `json:"label"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	Value       float64   `json:"value"`
}

// CompletionTrend is a fixed-length completed-task series plus the
// period-over-period change between the two most recent buckets.
// PreviousPeriod is a zero-value placeholder when only one bucket exists;
// its zero PeriodStart distinguishes "no prior bucket" from a prior bucket
// that counted zero.
type CompletionTrend struct {
	Granularity      Granularity  `json:"granularity"`
	Data             []TrendPoint `json:"data"`
	CurrentPeriod    TrendPoint   `json:"currentPeriod"`
	PreviousPeriod   TrendPoint   `json:"previousPeriod"`
	PercentageChange float64      `json:"percentageChange"`
}

// AnalyzeTrend buckets completed-task counts into the fixed series for the
// granularity, walking backward from now, oldest bucket first.
func AnalyzeTrend(tasks []model.Task, granularity Granularity, now time.Time) CompletionTrend {
	buckets := trendBuckets(granularity, now)

	for _, task := range tasks {
		if task.CompletedAt == nil {
			continue
		}
		completed := *task.CompletedAt
		for i := range buckets {
			if !completed.Before(buckets[i].PeriodStart) && completed.Before(buckets[i].PeriodEnd) {
				buckets[i].Value++
				break
			}
		}
	}

	trend := CompletionTrend{Granularity: granularity, Data: buckets}
	if len(buckets) > 0 {
		trend.CurrentPeriod = buckets[len(buckets)-1]
	}
	if len(buckets) > 1 {
		trend.PreviousPeriod = buckets[len(buckets)-2]
	}
	if trend.PreviousPeriod.Value > 0 {
		trend.PercentageChange = round((trend.CurrentPeriod.Value-trend.PreviousPeriod.Value)/trend.PreviousPeriod.Value*100, 1)
	}
	return trend
}

func trendBuckets(granularity Granularity, now time.Time) []TrendPoint {
	count := granularity.BucketCount()
	buckets := make([]TrendPoint, 0, count)

	switch granularity {
	case GranularityDaily:
		today := startOfDay(now)
		for i := count - 1; i >= 0; i-- {
			start := today.AddDate(0, 0, -i)
			buckets = append(buckets, TrendPoint{
				Label:       start.Format("Jan 2"),
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 0, 1),
			})
		}
	case GranularityWeekly:
		// The newest 7-day window ends at the end of today.
		latestEnd := startOfDay(now).AddDate(0, 0, 1)
		for i := count - 1; i >= 0; i-- {
			end := latestEnd.AddDate(0, 0, -7*i)
			buckets = append(buckets, TrendPoint{
				Label:       fmt.Sprintf("Week %d", len(buckets)+1),
				PeriodStart: end.AddDate(0, 0, -7),
				PeriodEnd:   end,
			})
		}
	case GranularityMonthly:
		month := startOfMonth(now)
		for i := count - 1; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			buckets = append(buckets, TrendPoint{
				Label:       start.Format("Jan 2006"),
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 1, 0),
			})
		}
	case GranularityQuarterly:
		quarter := startOfQuarter(now)
		for i := count - 1; i >= 0; i-- {
			start := quarter.AddDate(0, -3*i, 0)
			buckets = append(buckets, TrendPoint{
				Label:       fmt.Sprintf("Q%d %d", (int(start.Month())-1)/3+1, start.Year()),
				PeriodStart: start,
				PeriodEnd:   start.AddDate(0, 3, 0),
			})
		}
	}
	return buckets
}
