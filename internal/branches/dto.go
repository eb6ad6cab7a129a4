package branches

import (
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
)

// BranchDTO exposes branch data in API responses.
type BranchDTO struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Address   *string    `json:"address,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	ZoneID    *uuid.UUID `json:"zone_id,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateBranchDTO holds creation-time data for a new branch.
type CreateBranchDTO struct {
	Code    string
	Name    string
	Address *string
	Phone   *string
	ZoneID  *uuid.UUID
}

// UpdateBranchDTO captures the mutable branch fields; nil means unchanged.
type UpdateBranchDTO struct {
	Name    *string
	Address *string
	Phone   *string
	ZoneID  *uuid.UUID
	Active  *bool
}

// FromModel maps the persisted branch into a DTO.
func FromModel(m *models.Branch) *BranchDTO {
	if m == nil {
		return nil
	}
	return &BranchDTO{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		ZoneID:    m.ZoneID,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO.
func (c CreateBranchDTO) ToModel() *models.Branch {
	return &models.Branch{
		Code:    c.Code,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		ZoneID:  c.ZoneID,
		Active:  true,
	}
}
