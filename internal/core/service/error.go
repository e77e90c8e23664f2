package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bornholm/garden/internal/core/port"
	"github.com/pkg/errors"
)

var (
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")

	// ErrPlantNotFound is returned when a payload references an unknown
	// plant. It matches [port.ErrNotFound].
	ErrPlantNotFound = errors.Wrap(port.ErrNotFound, "plant")
)

// ValidationError lists the invalid fields of a payload, keyed by their
// serialized name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrValidation.Error())

	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s %s", field, e.Fields[field])
	}

	return sb.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
