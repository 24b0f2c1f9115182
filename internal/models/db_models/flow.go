package db_models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type FlowCategory string

const (
	FlowImage   FlowCategory = "image"
	FlowVideo   FlowCategory = "video"
	FlowLipsync FlowCategory = "lipsync"
	FlowAgent   FlowCategory = "agent"
)

// Flow is a catalog entry describing an offered generation type. Seeded or
// managed by admins, read-only to end users.
type Flow struct {
	BaseModel
	Slug     string       `gorm:"uniqueIndex"`
	Title    string
	Category FlowCategory `gorm:"index"`

	// Input form description; "required" lists the field names a
	// generation payload must carry.
	InputSchema datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	CreditsPerGeneration int64
	RequiredTier         PlanTier

	// External workflow engine routing id.
	WorkflowID string

	IsActive  bool `gorm:"default:true"`
	SortOrder int
}

// RequiredFields parses the "required" list out of the input schema.
func (f *Flow) RequiredFields() []string {
	var schema struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(f.InputSchema, &schema); err != nil {
		return nil
	}
	return schema.Required
}

// ServiceType maps the flow category onto the per-service credit cost slot.
func (f *Flow) ServiceType() ServiceType {
	switch f.Category {
	case FlowVideo:
		return ServiceVideo
	case FlowLipsync:
		return ServiceTalkingHead
	default:
		return ServiceImage
	}
}
