package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Patch operations applied to a note's content document. The server applies
// the whole list inside one database transaction; ordering is significant.
const (
	PatchOpAdd     = "add"
	PatchOpReplace = "replace"
	PatchOpRemove  = "remove"
)

// PatchOperation is a single path-addressed mutation of a note's content
// document, in JSON-Patch style. Path uses "/"-separated segments rooted at
// the document ("/title", "/blocks/0/text").
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

var (
	// ErrEmptyPatch is returned when a patch request carries no operations.
	ErrEmptyPatch = errors.New("patch contains no operations")

	// ErrInvalidPatchOp is returned when an operation's op field is not one
	// of add/replace/remove, or when a path is malformed.
	ErrInvalidPatchOp = errors.New("invalid patch operation")
)

// Validate checks the structural well-formedness of the operation list
// before it is shipped to the database. Semantic errors (missing paths in
// the target document) surface from the stored function instead.
func ValidatePatch(ops []PatchOperation) error {
	if len(ops) == 0 {
		return ErrEmptyPatch
	}

	for _, op := range ops {
		switch op.Op {
		case PatchOpAdd, PatchOpReplace, PatchOpRemove:
		default:
			return ErrInvalidPatchOp
		}

		if !strings.HasPrefix(op.Path, "/") || op.Path == "/" {
			return ErrInvalidPatchOp
		}

		if op.Op != PatchOpRemove && len(op.Value) == 0 {
			return ErrInvalidPatchOp
		}
	}

	return nil
}
