package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string
	Email     string `gorm:"uniqueIndex"`
	Phone     string
	Address   string
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
