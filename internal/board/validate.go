package board

import (
	"errors"
	"fmt"

	"go-logistics-ws/internal/model"
)

var ErrInvalidInput = errors.New("invalid input")

// Verdict is the structured result of validating a proposed move.
// Business-rule violations land in Errors/Warnings; they are outcomes,
// not Go errors. Only malformed input is signalled as an error.
type Verdict struct {
	Valid    bool     `json:"valid"`
	NoOp     bool     `json:"no_op,omitempty"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate decides whether container c may move from src to dst.
// Pure: reads the states, mutates nothing.
func Validate(c *model.Container, src, dst *LocationState) (Verdict, error) {
	if c == nil || src == nil || dst == nil {
		return Verdict{}, fmt.Errorf("%w: nil container or location", ErrInvalidInput)
	}
	if c.ID == "" || src.Location.ID == "" || dst.Location.ID == "" {
		return Verdict{}, fmt.Errorf("%w: missing id", ErrInvalidInput)
	}

	// Errors and Warnings start as empty slices so the verdict always
	// marshals with the same shape.
	v := Verdict{Errors: []string{}, Warnings: []string{}}

	// Dropping a container where it already sits is an idempotent success.
	if src.Location.ID == dst.Location.ID {
		v.Valid = true
		v.NoOp = true
		return v, nil
	}

	if limit := dst.Location.Capacity; limit != nil && dst.Occupancy()+1 > *limit {
		v.Errors = append(v.Errors, fmt.Sprintf("destination at capacity (%d/%d)", dst.Occupancy(), *limit))
	}

	if dst.Location.Type == model.LocationTruck && !c.Status.AtLeast(model.StatusApproved) {
		v.Errors = append(v.Errors, "must be approved before loading")
	}

	if c.ContainerType == model.ContainerKeg &&
		dst.Location.Type == model.LocationCleaning &&
		c.Status != model.StatusDelivered {
		v.Warnings = append(v.Warnings, "returning a container not yet delivered")
	}

	v.Valid = len(v.Errors) == 0
	return v, nil
}
