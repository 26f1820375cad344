package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mfcastro/contas/internal/domain"
)

// Args is the named argument map of a command. Values typically come from
// decoded JSON, so numbers may arrive as float64 or json.Number.
type Args map[string]any

func (a Args) requiredString(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%w: missing argument %q", errMalformed, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %q must be a string", errMalformed, key)
	}

	return s, nil
}

func (a Args) optionalString(key string) (*string, error) {
	if _, ok := a[key]; !ok {
		return nil, nil
	}

	s, err := a.requiredString(key)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (a Args) requiredInt(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing argument %q", errMalformed, key)
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: argument %q must be an integer", errMalformed, key)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: argument %q must be an integer", errMalformed, key)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%w: argument %q must be an integer", errMalformed, key)
	}
}

func (a Args) optionalInt(key string) (*int, error) {
	if _, ok := a[key]; !ok {
		return nil, nil
	}

	n, err := a.requiredInt(key)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

func (a Args) requiredMoney(key string) (domain.Money, error) {
	v, ok := a[key]
	if !ok {
		return domain.Zero, fmt.Errorf("%w: missing argument %q", errMalformed, key)
	}

	switch n := v.(type) {
	case float64:
		return domain.MoneyFromFloat(n)
	case string:
		m, err := domain.MoneyFromString(n)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				return domain.Zero, fmt.Errorf("%w: argument %q must be a number", errMalformed, key)
			}
			return domain.Zero, err
		}
		return m, nil
	case json.Number:
		m, err := domain.MoneyFromString(n.String())
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				return domain.Zero, fmt.Errorf("%w: argument %q must be a number", errMalformed, key)
			}
			return domain.Zero, err
		}
		return m, nil
	default:
		return domain.Zero, fmt.Errorf("%w: argument %q must be a number", errMalformed, key)
	}
}

func (a Args) optionalMoney(key string) (*domain.Money, error) {
	if _, ok := a[key]; !ok {
		return nil, nil
	}

	m, err := a.requiredMoney(key)
	if err != nil {
		return nil, err
	}

	return &m, nil
}
