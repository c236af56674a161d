package repositories

import (
	"strings"

	"github.com/yigit/seasonledger/internal/app/models/dto/enums"
)

// sortSpec maps API sort fields onto columns.
type sortSpec struct {
	columns      map[string]string
	defaultField string
	defaultDir   enums.SortDirection
	tieBreaker   string
}

// orderBy returns ORDER BY terms. Unknown fields and directions fall back to the defaults;
// the tie-breaker keeps paging deterministic.
func (s sortSpec) orderBy(field, direction string) []string {
	col, ok := s.columns[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		col = s.columns[strings.ToLower(s.defaultField)]
	}
	dir := enums.ParseSortDirection(direction, s.defaultDir).SQL()

	terms := []string{col + " " + dir}
	if col != s.tieBreaker {
		terms = append(terms, s.tieBreaker+" "+dir)
	}
	return terms
}

var (
	personSort = sortSpec{
		columns: map[string]string{
			"id":          "p.id",
			"gamename":    "p.game_name",
			"name":        "p.name",
			"phonenumber": "p.phone_number",
			"role":        "p.role",
			"isactive":    "p.is_active",
		},
		defaultField: "gameName",
		defaultDir:   enums.SortAsc,
		tieBreaker:   "p.id",
	}

	seasonSort = sortSpec{
		columns: map[string]string{
			"id":        "s.id",
			"startdate": "s.start_date",
			"isactive":  "s.is_active",
		},
		defaultField: "startDate",
		defaultDir:   enums.SortDesc,
		tieBreaker:   "s.id",
	}

	eventSort = sortSpec{
		columns: map[string]string{
			"id":       "e.id",
			"name":     "e.name",
			"seasonid": "e.season_id",
			"payment":  "e.payment_cents",
			"datetime": "e.date_time",
		},
		defaultField: "dateTime",
		defaultDir:   enums.SortDesc,
		tieBreaker:   "e.id",
	}

	// "payment" is what the person paid; "eventPayment" is the event's base fee.
	personReportSort = sortSpec{
		columns: map[string]string{
			"id":           "e.id",
			"name":         "e.name",
			"payment":      "ep.payment_cents",
			"eventpayment": "e.payment_cents",
			"datetime":     "e.date_time",
		},
		defaultField: "dateTime",
		defaultDir:   enums.SortDesc,
		tieBreaker:   "e.id",
	}
)
