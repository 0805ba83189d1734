// Package validation checks API input.
//
// Request bodies are validated from struct tags with the validator
// library; query parameters and other loose values go through the
// collecting Validator. Both produce a VALIDATION_ERROR listing every
// failing field.
//
//	type UpdateSegmentRequest struct {
//	    SegmentIndex int `json:"segmentIndex" validate:"min=0"`
//	}
//	err := validation.Validate(req)
//
//	v := validation.New()
//	v.Range("top", top, 1, 100).Locale("locale", locale)
//	err := v.Error()
package validation
