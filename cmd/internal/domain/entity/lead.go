package entity

import (
	"slices"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type LeadStage string

const (
	StageNewRequest       LeadStage = "new_request"
	StageRFQSent          LeadStage = "rfq_sent"
	StageQuotesReceived   LeadStage = "quotes_received"
	StageContractorReview LeadStage = "contractor_review"
	StageInDelivery       LeadStage = "in_delivery"
	StageCompleted        LeadStage = "completed"
)

// LeadStages is the pipeline, in board order.
var LeadStages = []LeadStage{
	StageNewRequest,
	StageRFQSent,
	StageQuotesReceived,
	StageContractorReview,
	StageInDelivery,
	StageCompleted,
}

func (s LeadStage) Valid() bool {
	return slices.Contains(LeadStages, s)
}

type LeadSource string

const (
	SourceFromRequest LeadSource = "from_request"
	SourceManual      LeadSource = "manual"
)

// Lead is the sales-pipeline record of a (prospective) deal.
type Lead struct {
	ID                int64                       `gorm:"primaryKey"`
	ClientID          *int64                      `gorm:"index"` // References: clients(id)
	RequestID         *int64                      `gorm:"index"` // References: requests(id)
	Stage             LeadStage                   `gorm:"not null;default:'new_request'"`
	Source            LeadSource                  `gorm:"not null;default:'from_request'"`
	ContractorName    string                      `gorm:"not null;default:''"`
	ContractorContact string                      `gorm:"not null;default:''"`
	ProjectName       string                      `gorm:"not null;default:''"`
	Location          string                      `gorm:"not null;default:''"`
	Materials         datatypes.JSONSlice[string] `gorm:"not null"`
	Notes             string                      `gorm:"not null;default:''"`
	EstimatedValue    decimal.NullDecimal         `gorm:"type:decimal(12,2)"`
	CreatedAt         int64                       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt         int64                       `gorm:"not null;autoUpdateTime:false"`
}

// StageForStatus maps a request status onto the pipeline stage a manual status
// edit moves the lead to. Statuses outside the enumeration map to nothing.
func StageForStatus(status RequestStatus) (LeadStage, bool) {
	switch status {
	case StatusPending:
		return StageNewRequest, true
	case StatusQuoted:
		return StageContractorReview, true
	case StatusCompleted:
		return StageCompleted, true
	default:
		return "", false
	}
}
