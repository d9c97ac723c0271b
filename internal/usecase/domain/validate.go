package domain

import (
	"fmt"
	"math"
	"strings"

	"impacttrack/internal/entities"

	"github.com/google/uuid"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{entities.ErrInvalidArgument}, args...)...)
}

func checkID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("%s is required", field)
	}
	if uuid.Validate(id) != nil {
		return invalid("%s is not a valid identifier", field)
	}
	return nil
}

func checkOptionalID(field string, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	return checkID(field, *id)
}

func checkIDs(field string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, invalid("%s must not be empty", field)
	}
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if err := checkID(field, id); err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res, nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("%s must be a finite number", field)
	}
	if v < 0 {
		return invalid("%s must not be negative", field)
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func assignID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
