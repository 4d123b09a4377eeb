package dto

import "encoding/json"

// CreatePupilRequest is the body for creating a pupil
type CreatePupilRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	FormID    *int64 `json:"form_id"`
	Notes     string `json:"notes"`
}

// UpdatePupilRequest carries a partial pupil update. Fields left out of the
// request keep their stored value. form_id is special: an explicit JSON null
// unassigns the form, while leaving the key out keeps the current form, so the
// raw body is inspected for key presence during unmarshalling.
type UpdatePupilRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Notes     *string `json:"notes"`
	FormID    *int64  `json:"form_id"`
	FormIDSet bool    `json:"-"`
}

// UnmarshalJSON records whether the form_id key was present in the body
func (r *UpdatePupilRequest) UnmarshalJSON(data []byte) error {
	type alias UpdatePupilRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, a.FormIDSet = keys["form_id"]

	*r = UpdatePupilRequest(a)
	return nil
}

// CSVImportResult reports the outcome of a bulk pupil import
type CSVImportResult struct {
	Message  string `json:"message"`
	Imported int    `json:"count"`
}
