package dto

import (
	"cleanbook/shared/constant"
	"cleanbook/shared/model"
	"cleanbook/shared/timezone"
)

// Metadata is the audit block embedded in API resources. Timestamps are RFC 3339
// in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"createdAt"`
	ModifiedAt string `json:"modifiedAt"`
	CreatedBy  string `json:"createdBy,omitempty"`
	ModifiedBy string `json:"modifiedBy,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(source.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(source.ModifiedAt, constant.DateFormat),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}
