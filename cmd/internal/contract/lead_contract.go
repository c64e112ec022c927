package contract

import "github.com/shopspring/decimal"

type LeadResponse struct {
	ID                int64               `json:"id"`
	ClientID          *int64              `json:"client_id"`
	RequestID         *int64              `json:"request_id"`
	Stage             string              `json:"stage"`
	Source            string              `json:"source"`
	ContractorName    string              `json:"contractor_name"`
	ContractorContact string              `json:"contractor_contact"`
	ProjectName       string              `json:"project_name"`
	Location          string              `json:"location"`
	Materials         []string            `json:"materials"`
	Notes             string              `json:"notes"`
	EstimatedValue    decimal.NullDecimal `json:"estimated_value"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
}

type CreateLeadRequest struct {
	ClientID          *int64           `json:"client_id" validate:"omitempty,gt=0"`
	Stage             string           `json:"stage" validate:"omitempty,leadstage"`
	ContractorName    string           `json:"contractor_name" validate:"required,min=2,max=120"`
	ContractorContact string           `json:"contractor_contact" validate:"max=60"`
	ProjectName       string           `json:"project_name" validate:"max=200"`
	Location          string           `json:"location" validate:"max=120"`
	Materials         []string         `json:"materials" validate:"max=200,nodupes,dive,required,max=200"`
	Notes             string           `json:"notes" validate:"max=5000"`
	EstimatedValue    *decimal.Decimal `json:"estimated_value" validate:"omitempty,gte=0"`
}

type UpdateLeadRequest struct {
	Stage             *string          `json:"stage" validate:"omitempty,leadstage"`
	ContractorName    *string          `json:"contractor_name" validate:"omitempty,min=2,max=120"`
	ContractorContact *string          `json:"contractor_contact" validate:"omitempty,max=60"`
	ProjectName       *string          `json:"project_name" validate:"omitempty,max=200"`
	Location          *string          `json:"location" validate:"omitempty,max=120"`
	Materials         []string         `json:"materials" validate:"omitempty,max=200,nodupes,dive,required,max=200"`
	Notes             *string          `json:"notes" validate:"omitempty,max=5000"`
	EstimatedValue    *decimal.Decimal `json:"estimated_value" validate:"omitempty,gte=0"`
}

type ListLeadsQuery struct {
	Stage string `query:"stage" validate:"omitempty,leadstage"`
}
