// Package dto provides data transfer objects for the WOPI HTTP endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/wopihost/internal/validation"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// TokenRequest contains the query parameters of the token endpoint.
type TokenRequest struct {
	FileID string `form:"fileId"`
	Action string `form:"action"`
}

// Validate checks if the token request is valid.
func (r *TokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FileID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Action,
			validation.Required,
			validation.In(string(wopiDomain.ViewAction), string(wopiDomain.EditAction)),
		),
	)
}
