package inventory

import (
	"sort"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ReportLine is one product's row on the all-time inventory report
type ReportLine struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Unit          string    `json:"unit"`
	CurrentStock  int64     `json:"current_stock"`
	TotalImported int64     `json:"total_imported"`
	TotalExported int64     `json:"total_exported"`
	TotalReturned int64     `json:"total_returned"`
}

// BuildReport joins products with their movement totals. Every product gets
// a line; products without movements report zero sums.
func BuildReport(products []catalog.Product, totals []MovementTotals) []ReportLine {
	byProduct := make(map[uuid.UUID]MovementTotals, len(totals))
	for _, t := range totals {
		byProduct[t.ProductID] = t
	}

	lines := make([]ReportLine, 0, len(products))
	for _, p := range products {
		t := byProduct[p.ID]
		lines = append(lines, ReportLine{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Unit:          p.Unit,
			CurrentStock:  p.Stock,
			TotalImported: t.Imported,
			TotalExported: t.Exported,
			TotalReturned: t.Returned,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].ProductName < lines[j].ProductName })
	return lines
}

// DatedReportLine is one product's row on the date-range inventory report
type DatedReportLine struct {
	ProductID    uuid.UUID     `json:"product_id"`
	ProductName  string        `json:"product_name"`
	Unit         string        `json:"unit"`
	CurrentStock int64         `json:"current_stock"`
	Imported     int64         `json:"imported"`
	Exported     int64         `json:"exported"`
	Returned     int64         `json:"returned"`
	NetChange    int64         `json:"net_change"`
	Logs         []MovementLog `json:"logs"`
}

// DateRange is an inclusive reporting window
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDayRange builds a range covering whole days: from the start of
// startDate to 23:59:59.999 of endDate.
func NewDayRange(startDate, endDate time.Time) DateRange {
	from := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	to := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, int(999*time.Millisecond), endDate.Location())
	return DateRange{From: from, To: to}
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// BuildDatedReport groups log entries in the range by product. Logs are
// expected newest first and keep that order within each line.
func BuildDatedReport(products []catalog.Product, logs []MovementLog, r DateRange) []DatedReportLine {
	totals := make(map[uuid.UUID]*MovementTotals, len(products))
	perProduct := make(map[uuid.UUID][]MovementLog, len(products))
	for _, l := range logs {
		if !r.Contains(l.CreatedAt) {
			continue
		}
		t, ok := totals[l.ProductID]
		if !ok {
			t = &MovementTotals{ProductID: l.ProductID}
			totals[l.ProductID] = t
		}
		t.Add(l.Type, l.Quantity)
		perProduct[l.ProductID] = append(perProduct[l.ProductID], l)
	}

	lines := make([]DatedReportLine, 0, len(products))
	for _, p := range products {
		t := MovementTotals{ProductID: p.ID}
		if found, ok := totals[p.ID]; ok {
			t = *found
		}
		entries := perProduct[p.ID]
		if entries == nil {
			entries = []MovementLog{}
		}
		lines = append(lines, DatedReportLine{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Unit:         p.Unit,
			CurrentStock: p.Stock,
			Imported:     t.Imported,
			Exported:     t.Exported,
			Returned:     t.Returned,
			NetChange:    t.NetChange(),
			Logs:         entries,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].ProductName < lines[j].ProductName })
	return lines
}
