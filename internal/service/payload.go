package service

import (
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnknownFilterField rejects filter predicates over undeclared fields.
var ErrUnknownFilterField = apperrors.New(apperrors.KindValidation, "unknown filter field")

// sanitizeUpdate splits a client-supplied partial update into set and unset
// documents. Keys outside the allowed set are dropped silently, which is how
// privileged fields (ownership, credentials, role) are stripped. Empty
// strings and explicit nulls mean "clear this field" and become unsets.
func sanitizeUpdate(payload map[string]any, allowed map[string]bool) (repository.Fields, []string) {
	set := repository.Fields{}
	var unset []string

	for key, value := range payload {
		if !allowed[key] {
			continue
		}
		if value == nil {
			unset = append(unset, key)
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			unset = append(unset, key)
			continue
		}
		set[key] = value
	}
	return set, unset
}

// coerceTime re-parses a date field that arrived as a JSON string so it is
// stored as a real BSON date instead of text. No-op when the key is absent.
func coerceTime(set repository.Fields, key string) error {
	raw, ok := set[key]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return apperrors.New(apperrors.KindValidation, key+" must be an RFC 3339 date string")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return apperrors.New(apperrors.KindValidation, key+" must be an RFC 3339 date string")
	}
	set[key] = t.UTC()
	return nil
}

// coerceObjectID re-parses an id field that arrived as a JSON hex string so
// filters match the stored ObjectID. No-op when the key is absent.
func coerceObjectID(fields repository.Fields, key string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return apperrors.New(apperrors.KindValidation, key+" must be an object id string")
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return apperrors.New(apperrors.KindValidation, key+" must be an object id string")
	}
	fields[key] = id
	return nil
}

// coerceBool re-parses a boolean field that arrived as a query string
// ("true"/"false") so filters match the stored boolean. No-op when the key
// is absent or already a bool.
func coerceBool(fields repository.Fields, key string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case bool:
		return nil
	case string:
		switch v {
		case "true":
			fields[key] = true
			return nil
		case "false":
			fields[key] = false
			return nil
		}
	}
	return apperrors.New(apperrors.KindValidation, key+" must be true or false")
}

// sanitizeFilter validates equality predicates against the entity's declared
// filterable fields. Unlike updates, an undeclared filter key is an error:
// silently ignoring it would return a broader result set than the caller
// asked for.
func sanitizeFilter(payload map[string]any, allowed map[string]bool) (repository.Fields, error) {
	eq := repository.Fields{}
	for key, value := range payload {
		if !allowed[key] {
			return nil, ErrUnknownFilterField
		}
		eq[key] = value
	}
	return eq, nil
}
