// Package idgen provides the identifier sources used for flattened file nodes.
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Func returns a fresh identifier on every call. Implementations must be safe
// for concurrent use.
type Func func() string

// Supported identifier formats.
const (
	FormatUUID     = "uuid"
	FormatObjectID = "objectid"
	FormatULID     = "ulid"
)

// UUID returns random (v4) UUIDs in canonical form.
func UUID() string {
	return uuid.NewString()
}

// ObjectID returns 24-character hex BSON ObjectIDs.
func ObjectID() string {
	return primitive.NewObjectID().Hex()
}

// ULID returns monotonic ULIDs.
func ULID() string {
	return ulid.Make().String()
}

// New returns the generator for the named format.
func New(format string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatUUID, "":
		return UUID, nil
	case FormatObjectID:
		return ObjectID, nil
	case FormatULID:
		return ULID, nil
	default:
		return nil, fmt.Errorf("unknown id format %q (supported: uuid, objectid, ulid)", format)
	}
}

// Sequence returns a deterministic generator yielding prefix-1, prefix-2, ...
// It is meant for tests and dry runs, and is not safe for concurrent use.
func Sequence(prefix string) Func {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
