package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingID       = errors.New("missing id")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrUnknownTipKind  = errors.New("unknown tip kind")
	ErrUnknownAssignee = errors.New("item assigned to unknown person")
)

// Validate reports every problem with the bill as one joined error.
// The allocation engine does not call it; it is for collaborators that
// accept bills from users.
func (b Bill) Validate() error {
	var errs []error

	people := make(map[string]bool, len(b.People))
	for i, p := range b.People {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("people[%d]: %w", i, ErrMissingID))
		case people[p.ID]:
			errs = append(errs, fmt.Errorf("people[%d] %q: %w", i, p.ID, ErrDuplicateID))
		}
		people[p.ID] = true
	}

	items := make(map[string]bool, len(b.Items))
	for i, item := range b.Items {
		switch {
		case item.ID == "":
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, ErrMissingID))
		case items[item.ID]:
			errs = append(errs, fmt.Errorf("items[%d] %q: %w", i, item.ID, ErrDuplicateID))
		}
		items[item.ID] = true

		if item.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("items[%d] price %s: %w", i, item.Price, ErrNegativeAmount))
		}
		for _, id := range item.AssignedTo {
			if !people[id] {
				errs = append(errs, fmt.Errorf("items[%d] %q: %w: %q", i, item.Name, ErrUnknownAssignee, id))
			}
		}
	}

	if b.Subtotal.IsNegative() {
		errs = append(errs, fmt.Errorf("subtotal %s: %w", b.Subtotal, ErrNegativeAmount))
	}
	if b.Tax.IsNegative() {
		errs = append(errs, fmt.Errorf("tax %s: %w", b.Tax, ErrNegativeAmount))
	}
	if b.Tip.Kind != TipPercent && b.Tip.Kind != TipAmount {
		errs = append(errs, fmt.Errorf("tip kind %q: %w", b.Tip.Kind, ErrUnknownTipKind))
	}
	if b.Tip.Value.IsNegative() {
		errs = append(errs, fmt.Errorf("tip %s: %w", b.Tip.Value, ErrNegativeAmount))
	}

	return errors.Join(errs...)
}
