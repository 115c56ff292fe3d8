package salary

import (
	"time"

	"github.com/google/uuid"
)

// Salary is one row of the compensation ledger. EffectiveFrom/EffectiveTo
// are stored as text in the dateformat pattern; EffectiveTo is nil while
// the record is open. ID and EmployeeID never change after creation.
// Rows are never deleted, only retired, so the full history stays
// available for audit.
type Salary struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;index"`
	Amount        int
	EffectiveFrom string  `gorm:"type:text"`
	EffectiveTo   *string `gorm:"type:text"`
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
