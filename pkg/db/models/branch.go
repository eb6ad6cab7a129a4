package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a clinic location staff can be scheduled into.
type Branch struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string     `gorm:"column:code;not null;uniqueIndex"`
	Name      string     `gorm:"column:name;not null"`
	Address   *string    `gorm:"column:address"`
	Phone     *string    `gorm:"column:phone"`
	ZoneID    *uuid.UUID `gorm:"column:zone_id;type:uuid"`
	Active    bool       `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
