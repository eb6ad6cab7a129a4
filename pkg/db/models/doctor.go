package models

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a physician on the clinic roster.
type Doctor struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName  string     `gorm:"column:first_name;not null"`
	LastName   string     `gorm:"column:last_name;not null"`
	Speciality *string    `gorm:"column:speciality"`
	BranchID   *uuid.UUID `gorm:"column:branch_id;type:uuid"`
	Email      *string    `gorm:"column:email"`
	Phone      *string    `gorm:"column:phone"`
	Active     bool       `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
