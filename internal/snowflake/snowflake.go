package snowflake

import (
	"errors"
	"fmt"
	"math/big"
)

// decimalBase is the radix used for all identifier strings.
const decimalBase = 10

// Zero is the boundary value used when no identifier is known.
const Zero = "0"

// ErrInvalidID is returned for identifiers that are not non-negative decimal strings.
var ErrInvalidID = errors.New("invalid item id")

//nolint:gochecknoglobals // Immutable constant used for increment/decrement.
var one = big.NewInt(1)

// Valid reports whether id is a non-empty string of ASCII digits.
func Valid(id string) bool {
	if id == "" {
		return false
	}
	for i := range len(id) {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// parse converts id to a big.Int, rejecting anything Valid rejects.
func parse(id string) (*big.Int, error) {
	if !Valid(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	n, ok := new(big.Int).SetString(id, decimalBase)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return n, nil
}

// Canonical returns id without leading zeros, so "007" and "7" map to the
// same key.
func Canonical(id string) (string, error) {
	n, err := parse(id)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// Increment returns id + 1.
func Increment(id string) (string, error) {
	n, err := parse(id)
	if err != nil {
		return "", err
	}
	return n.Add(n, one).String(), nil
}

// Decrement returns id - 1. Decrementing "0" yields "-1", matching plain
// big-integer semantics; callers never hold an item with id 0 in practice.
func Decrement(id string) (string, error) {
	n, err := parse(id)
	if err != nil {
		return "", err
	}
	return n.Sub(n, one).String(), nil
}

// MustIncrement is like Increment but panics on an invalid id.
// It is intended for identifiers already checked with Valid.
func MustIncrement(id string) string {
	s, err := Increment(id)
	if err != nil {
		panic(err)
	}
	return s
}

// MustDecrement is like Decrement but panics on an invalid id.
func MustDecrement(id string) string {
	s, err := Decrement(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Compare returns -1 if a is older than b, 0 if equal, and +1 if a is newer.
// Leading zeros are ignored. Both ids must be Valid.
func Compare(a, b string) (int, error) {
	x, err := parse(a)
	if err != nil {
		return 0, err
	}
	y, err := parse(b)
	if err != nil {
		return 0, err
	}
	return x.Cmp(y), nil
}

// Newer reports whether a is strictly newer than b. Invalid ids are never newer.
func Newer(a, b string) bool {
	c, err := Compare(a, b)
	return err == nil && c > 0
}
