package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePupilRequestFormIDPresence(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantSet    bool
		wantFormID *int64
	}{
		{
			name:    "form_id omitted",
			body:    `{"first_name":"Ada"}`,
			wantSet: false,
		},
		{
			name:    "form_id explicit null",
			body:    `{"form_id":null}`,
			wantSet: true,
		},
		{
			name:       "form_id set",
			body:       `{"form_id":3}`,
			wantSet:    true,
			wantFormID: ptr(int64(3)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdatePupilRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.FormIDSet)
			assert.Equal(t, tt.wantFormID, req.FormID)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
