package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nvoronin/inkwell/models"
)

// ErrPatchPathNotFound is returned when an operation addresses a path whose
// intermediate segments do not exist in the document.
var ErrPatchPathNotFound = errors.New("patch path not found")

// ApplyJSONPatch applies an ordered list of add/replace/remove operations to
// a JSON document and returns the re-serialized result. It is the local
// store's counterpart of the apply_note_patch stored function, and follows
// its semantics: add and replace both write the addressed leaf (creating a
// missing final key), remove is a no-op when the leaf is already absent,
// and a missing intermediate segment fails the whole patch.
func ApplyJSONPatch(doc []byte, ops []models.PatchOperation) ([]byte, error) {
	if err := models.ValidatePatch(ops); err != nil {
		return nil, err
	}

	var root any
	if len(doc) == 0 {
		root = map[string]any{}
	} else if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("error decoding content document: %w", err)
	}

	for _, op := range ops {
		segments := strings.Split(strings.TrimPrefix(op.Path, "/"), "/")

		var err error
		switch op.Op {
		case models.PatchOpAdd, models.PatchOpReplace:
			var value any
			if err = json.Unmarshal(op.Value, &value); err != nil {
				return nil, fmt.Errorf("error decoding patch value for %q: %w", op.Path, err)
			}
			root, err = setAtPath(root, segments, value)
		case models.PatchOpRemove:
			root, err = removeAtPath(root, segments)
		}
		if err != nil {
			return nil, fmt.Errorf("op %s %q: %w", op.Op, op.Path, err)
		}
	}

	result, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("error encoding content document: %w", err)
	}
	return result, nil
}

func setAtPath(node any, segments []string, value any) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}

	head, rest := segments[0], segments[1:]

	switch container := node.(type) {
	case map[string]any:
		if len(rest) == 0 {
			container[head] = value
			return container, nil
		}
		child, ok := container[head]
		if !ok {
			return nil, ErrPatchPathNotFound
		}
		updated, err := setAtPath(child, rest, value)
		if err != nil {
			return nil, err
		}
		container[head] = updated
		return container, nil

	case []any:
		idx, err := arrayIndex(head, len(container), true)
		if err != nil {
			return nil, err
		}
		if idx == len(container) {
			if len(rest) > 0 {
				return nil, ErrPatchPathNotFound
			}
			return append(container, value), nil
		}
		if len(rest) == 0 {
			container[idx] = value
			return container, nil
		}
		updated, err := setAtPath(container[idx], rest, value)
		if err != nil {
			return nil, err
		}
		container[idx] = updated
		return container, nil

	default:
		return nil, ErrPatchPathNotFound
	}
}

func removeAtPath(node any, segments []string) (any, error) {
	head, rest := segments[0], segments[1:]

	switch container := node.(type) {
	case map[string]any:
		if len(rest) == 0 {
			delete(container, head)
			return container, nil
		}
		child, ok := container[head]
		if !ok {
			// Leaf's parent is missing entirely: nothing to remove.
			return container, nil
		}
		updated, err := removeAtPath(child, rest)
		if err != nil {
			return nil, err
		}
		container[head] = updated
		return container, nil

	case []any:
		idx, err := arrayIndex(head, len(container), false)
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			return append(container[:idx], container[idx+1:]...), nil
		}
		updated, err := removeAtPath(container[idx], rest)
		if err != nil {
			return nil, err
		}
		container[idx] = updated
		return container, nil

	default:
		return nil, ErrPatchPathNotFound
	}
}

// arrayIndex parses an array segment. "-" (append) and the one-past-the-end
// index are only valid when adding.
func arrayIndex(segment string, length int, adding bool) (int, error) {
	if segment == "-" {
		if !adding {
			return 0, models.ErrInvalidPatchOp
		}
		return length, nil
	}

	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 {
		return 0, models.ErrInvalidPatchOp
	}

	limit := length
	if adding {
		limit = length + 1
	}
	if idx >= limit {
		return 0, ErrPatchPathNotFound
	}

	return idx, nil
}
