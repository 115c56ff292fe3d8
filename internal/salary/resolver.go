package salary

import (
	"hr-backend/internal/shared/dateformat"

	"github.com/google/uuid"
)

// LatestPerEmployee reduces an unordered set of active ledger rows to the
// single latest-dated row per employee. The store can momentarily hold
// more than one active row for an employee (concurrent writers), so the
// reduction must not assume uniqueness.
//
// Ties on identical EffectiveFrom are broken by the lexically greater
// record ID, a stable rule independent of iteration order.
//
// A row whose EffectiveFrom does not parse fails the whole resolution:
// skipping it would hide a corrupted ledger from the admin view.
func LatestPerEmployee(records []Salary) ([]Salary, error) {
	latest := make(map[uuid.UUID]Salary, len(records))
	var order []uuid.UUID

	for _, rec := range records {
		if _, err := dateformat.Parse(rec.EffectiveFrom); err != nil {
			return nil, err
		}

		cur, seen := latest[rec.EmployeeID]
		if !seen {
			latest[rec.EmployeeID] = rec
			order = append(order, rec.EmployeeID)
			continue
		}

		cmp, err := dateformat.Compare(rec.EffectiveFrom, cur.EffectiveFrom)
		if err != nil {
			return nil, err
		}
		if cmp > 0 || (cmp == 0 && rec.ID.String() > cur.ID.String()) {
			latest[rec.EmployeeID] = rec
		}
	}

	out := make([]Salary, 0, len(order))
	for _, employeeID := range order {
		out = append(out, latest[employeeID])
	}
	return out, nil
}
