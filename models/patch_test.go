package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePatch(t *testing.T) {
	value := json.RawMessage(`"v"`)

	tests := []struct {
		name    string
		ops     []PatchOperation
		wantErr error
	}{
		{
			name:    "empty patch",
			ops:     nil,
			wantErr: ErrEmptyPatch,
		},
		{
			name:    "valid add",
			ops:     []PatchOperation{{Op: PatchOpAdd, Path: "/title", Value: value}},
			wantErr: nil,
		},
		{
			name:    "valid replace on nested path",
			ops:     []PatchOperation{{Op: PatchOpReplace, Path: "/blocks/0/text", Value: value}},
			wantErr: nil,
		},
		{
			name:    "valid remove without value",
			ops:     []PatchOperation{{Op: PatchOpRemove, Path: "/title"}},
			wantErr: nil,
		},
		{
			name:    "unknown op",
			ops:     []PatchOperation{{Op: "move", Path: "/title", Value: value}},
			wantErr: ErrInvalidPatchOp,
		},
		{
			name:    "path without leading slash",
			ops:     []PatchOperation{{Op: PatchOpAdd, Path: "title", Value: value}},
			wantErr: ErrInvalidPatchOp,
		},
		{
			name:    "root path",
			ops:     []PatchOperation{{Op: PatchOpReplace, Path: "/", Value: value}},
			wantErr: ErrInvalidPatchOp,
		},
		{
			name:    "add without value",
			ops:     []PatchOperation{{Op: PatchOpAdd, Path: "/title"}},
			wantErr: ErrInvalidPatchOp,
		},
		{
			name: "one bad op fails the whole list",
			ops: []PatchOperation{
				{Op: PatchOpAdd, Path: "/title", Value: value},
				{Op: PatchOpReplace, Path: "broken", Value: value},
			},
			wantErr: ErrInvalidPatchOp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(tt.ops)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
