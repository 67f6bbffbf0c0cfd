package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Moves is a list of played columns that implements sql.Scanner.
type Moves []int

// Scan implements the sql.Scanner interface for Moves.
func (m *Moves) Scan(value interface{}) error {
	var s string

	switch v := value.(type) {
	case []byte:
		if v == nil {
			return errors.New("cannot scan nil into Moves")
		}
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("cannot scan %T into Moves", value)
	}

	// We should have a string that looks like "{1,2,3}"
	s = strings.Trim(s, "{}")

	if s == "" {
		*m = Moves{}
		return nil
	}

	parts := strings.Split(s, ",")

	moves := make(Moves, len(parts))
	for i, part := range parts {
		move, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("cannot convert %s to int: %w", part, err)
		}
		moves[i] = move
	}
	*m = moves

	return nil
}
