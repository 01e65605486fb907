package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignStatus is the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "ACTIVE"
	CampaignStatusInactive CampaignStatus = "INACTIVE"
	CampaignStatusDeleted  CampaignStatus = "DELETED"
)

// CampaignStatuses lists every valid status in declaration order
var CampaignStatuses = []CampaignStatus{
	CampaignStatusActive,
	CampaignStatusInactive,
	CampaignStatusDeleted,
}

// InvalidStatusError is returned when a status value is outside the enumeration
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	names := make([]string, len(CampaignStatuses))
	for i, s := range CampaignStatuses {
		names[i] = string(s)
	}
	return fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(names, ", "))
}

// ParseCampaignStatus maps a raw value onto the enumeration
func ParseCampaignStatus(raw string) (CampaignStatus, error) {
	switch CampaignStatus(raw) {
	case CampaignStatusActive:
		return CampaignStatusActive, nil
	case CampaignStatusInactive:
		return CampaignStatusInactive, nil
	case CampaignStatusDeleted:
		return CampaignStatusDeleted, nil
	default:
		return "", &InvalidStatusError{Value: raw}
	}
}

// UnmarshalJSON rejects values outside the enumeration while decoding
func (s *CampaignStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &InvalidStatusError{Value: string(data)}
	}
	status, err := ParseCampaignStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Toggled returns the opposite of ACTIVE/INACTIVE. Anything that is not ACTIVE becomes ACTIVE.
func (s CampaignStatus) Toggled() CampaignStatus {
	if s == CampaignStatusActive {
		return CampaignStatusInactive
	}
	return CampaignStatusActive
}

// Campaign represents an outreach campaign
type Campaign struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Status      CampaignStatus     `bson:"status" json:"status"` // ACTIVE, INACTIVE, DELETED
	Leads       []string           `bson:"leads" json:"leads"`   // LinkedIn profile URLs
	AccountIDs  []string           `bson:"accountIDs" json:"accountIDs"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsDeleted reports whether the campaign has been soft-deleted
func (c *Campaign) IsDeleted() bool {
	return c.Status == CampaignStatusDeleted
}

// CreateCampaignInput is the payload accepted when creating a campaign
type CreateCampaignInput struct {
	Name        string         `json:"name" binding:"notblank"`
	Description string         `json:"description" binding:"notblank"`
	Status      CampaignStatus `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Leads       []string       `json:"leads,omitempty" binding:"omitempty,dive,linkedin_profile"`
	AccountIDs  []string       `json:"accountIDs,omitempty"`
}

// CampaignPatch carries a partial update. Nil fields are left untouched.
type CampaignPatch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Status      *CampaignStatus `json:"status,omitempty"`
	Leads       *[]string       `json:"leads,omitempty"`
	AccountIDs  *[]string       `json:"accountIDs,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p CampaignPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil && p.Leads == nil && p.AccountIDs == nil
}

// ParseCampaignID parses a campaign identifier
func ParseCampaignID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
