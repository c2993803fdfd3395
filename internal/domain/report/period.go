// Package report holds the read models behind the debt, sales, revenue and dashboard reports.
// Builders are pure: they take loaded aggregates and never touch storage.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the format of report dates and daily bucket keys
const DayLayout = "2006-01-02"

// Period is an inclusive reporting window covering whole days
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod covers the start of startDate through 23:59:59.999 of endDate
func NewPeriod(startDate, endDate time.Time) Period {
	return Period{
		Start: time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location()),
		End:   time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, int(999*time.Millisecond), endDate.Location()),
	}
}

// MonthToDate runs from the first of now's month to the end of today
func MonthToDate(now time.Time) Period {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return NewPeriod(first, now)
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DailyAmount is one day's total
type DailyAmount struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// dailyBuckets sums amounts per calendar day, oldest day first. Sums are
// kept in decimal so totals over many rows cannot wrap.
type dailyBuckets map[string]decimal.Decimal

func (b dailyBuckets) add(t time.Time, amount decimal.Decimal) {
	day := t.Format(DayLayout)
	b[day] = b[day].Add(amount)
}

func (b dailyBuckets) sorted() []DailyAmount {
	out := make([]DailyAmount, 0, len(b))
	for day, amount := range b {
		out = append(out, DailyAmount{Date: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
