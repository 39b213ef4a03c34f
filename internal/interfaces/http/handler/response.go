package handler

import (
	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/interfaces/http/dto"
)

// The types below only describe payloads for the OpenAPI document.

// ErrorResponse is the error envelope
// @Description Error envelope
type ErrorResponse struct {
	Success bool          `json:"success" example:"false"`
	Error   dto.ErrorInfo `json:"error"`
}

// RecordListResponse is a list of records
// @Description Records of one category
type RecordListResponse struct {
	Success bool                      `json:"success" example:"true"`
	Data    []apptrash.RecordResponse `json:"data"`
	Meta    dto.Meta                  `json:"meta"`
}

// RecordEnvelope wraps one record
// @Description One record
type RecordEnvelope struct {
	Success bool                    `json:"success" example:"true"`
	Data    apptrash.RecordResponse `json:"data"`
}

// RestoreEnvelope wraps a restore outcome
// @Description Restore outcome; conflict_id is set when a conflict was detected
type RestoreEnvelope struct {
	Success bool                   `json:"success" example:"true"`
	Data    apptrash.RestoreResult `json:"data"`
}

// ConflictListResponse is a list of conflicts
// @Description Identity conflicts
type ConflictListResponse struct {
	Success bool                        `json:"success" example:"true"`
	Data    []apptrash.ConflictResponse `json:"data"`
	Meta    dto.Meta                    `json:"meta"`
}

// ConflictEnvelope wraps one conflict
// @Description One identity conflict
type ConflictEnvelope struct {
	Success bool                      `json:"success" example:"true"`
	Data    apptrash.ConflictResponse `json:"data"`
}
