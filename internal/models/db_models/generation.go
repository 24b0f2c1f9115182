package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GenerationStatus string

const (
	GenQueued     GenerationStatus = "queued"
	GenProcessing GenerationStatus = "processing"
	GenCompleted  GenerationStatus = "completed"
	GenFailed     GenerationStatus = "failed"
	GenCancelled  GenerationStatus = "cancelled"
)

// Legal lifecycle: queued → processing → {completed, failed, cancelled}.
// processing re-enters itself as progress updates arrive; terminal states
// accept nothing.
var generationTransitions = map[GenerationStatus][]GenerationStatus{
	GenQueued:     {GenProcessing, GenCompleted, GenFailed, GenCancelled},
	GenProcessing: {GenProcessing, GenCompleted, GenFailed, GenCancelled},
}

func (s GenerationStatus) Terminal() bool {
	return s == GenCompleted || s == GenFailed || s == GenCancelled
}

func (s GenerationStatus) CanTransitionTo(to GenerationStatus) bool {
	for _, allowed := range generationTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ParseGenerationStatus(s string) (GenerationStatus, bool) {
	switch GenerationStatus(s) {
	case GenQueued, GenProcessing, GenCompleted, GenFailed, GenCancelled:
		return GenerationStatus(s), true
	}
	return "", false
}

type Generation struct {
	BaseModel
	UserID         string     `gorm:"index"`
	FlowID         uuid.UUID  `gorm:"index"`
	ConversationID *uuid.UUID `gorm:"index"`

	Status   GenerationStatus `gorm:"index"`
	Progress int              // 0-100

	CreditsUsed int64

	Input       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	InputAssets []string       `gorm:"serializer:json"`

	OutputAssets []string `gorm:"serializer:json"`
	ErrorMessage *string
	ErrorDetails datatypes.JSON `gorm:"type:jsonb"`

	// External workflow engine execution id.
	ExecutionID *string `gorm:"index"`

	ProcessingStartedAt   *int64
	ProcessingCompletedAt *int64
	CancelledAt           *int64
	ExpiresAt             int64 `gorm:"index"`

	Flow Flow `gorm:"foreignKey:FlowID"`
}
