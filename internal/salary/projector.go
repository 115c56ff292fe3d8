package salary

import (
	"context"

	"hr-backend/internal/employee"
)

// EmployeeDirectory is the slice of the employee service the ledger needs:
// identity lookups for projection and for resolving emails to employee ids.
// employee.Service satisfies it.
type EmployeeDirectory interface {
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
	GetByEmail(ctx context.Context, email string) (employee.EmployeeResponse, error)
}

type Projector struct {
	directory EmployeeDirectory
}

func NewProjector(directory EmployeeDirectory) *Projector {
	return &Projector{directory: directory}
}

// ProjectAll maps ledger rows to the caller-facing view, resolving each
// owning employee at projection time. A dangling employee reference fails
// the whole projection: a salary row pointing at a missing employee means
// the ledger is corrupt, and an admin view must not paper over that.
func (p *Projector) ProjectAll(ctx context.Context, records []Salary) ([]EmployeeSalaryView, error) {
	views := make([]EmployeeSalaryView, 0, len(records))

	for _, rec := range records {
		empl, err := p.directory.GetByID(ctx, rec.EmployeeID.String())
		if err != nil {
			return nil, err
		}

		views = append(views, EmployeeSalaryView{
			EmployeeName:  empl.FullName,
			Email:         empl.Email,
			Amount:        rec.Amount,
			EffectiveFrom: rec.EffectiveFrom,
			EffectiveTo:   rec.EffectiveTo,
		})
	}

	return views, nil
}
