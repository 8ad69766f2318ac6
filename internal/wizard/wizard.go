// Package wizard assembles a Bill step by step: people, then items and
// their assignments, then tax and tip, then the result.
//
// A Session is a finite-state machine over those steps. It is not safe for
// concurrent use.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/receipt"
)

// Step is a wizard state.
type Step string

const (
	StepPeople Step = "people"
	StepItems  Step = "items"
	StepTotals Step = "totals"
	StepResult Step = "result"
)

var steps = []Step{StepPeople, StepItems, StepTotals, StepResult}

// DefaultTipPercent is the tip a new session starts with.
var DefaultTipPercent = decimal.NewFromInt(20)

var (
	ErrWrongStep      = errors.New("operation not allowed in this step")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrNoPeople       = errors.New("add at least one person first")
	ErrUnknownPerson  = errors.New("unknown person")
	ErrUnknownItem    = errors.New("unknown item")
	ErrNoNextStep     = errors.New("already at the last step")
	ErrNoPrevStep     = errors.New("already at the first step")
)

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator replaces the UUID generator used for people and items.
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) {
		s.newID = newID
	}
}

// Session holds a bill under construction.
type Session struct {
	step  Step
	bill  models.Bill
	newID func() string
}

// NewSession starts a session at the people step with a 20% tip.
func NewSession(opts ...Option) *Session {
	s := &Session{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset discards everything and returns to the people step.
func (s *Session) Reset() {
	s.step = StepPeople
	s.bill = models.Bill{
		People:   []models.Person{},
		Items:    []models.Item{},
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Tip:      models.PercentTip(DefaultTipPercent),
	}
}

// Step returns the current step.
func (s *Session) Step() Step {
	return s.step
}

// Bill returns a copy of the bill as assembled so far.
func (s *Session) Bill() models.Bill {
	return s.bill.Clone()
}

// Breakdown recomputes the split for the bill as it stands.
func (s *Session) Breakdown() models.Breakdown {
	return calculator.ComputeBreakdown(s.bill)
}

// ItemsTotal is the sum of every item's price, assigned or not.
func (s *Session) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.bill.Items {
		sum = sum.Add(item.Price)
	}
	return sum
}

// Next advances to the following step. Leaving the people step requires at
// least one person.
func (s *Session) Next() error {
	i := slices.Index(steps, s.step)
	if i == len(steps)-1 {
		return ErrNoNextStep
	}
	if s.step == StepPeople && len(s.bill.People) == 0 {
		return ErrNoPeople
	}
	s.step = steps[i+1]
	return nil
}

// Back returns to the previous step, keeping everything entered.
func (s *Session) Back() error {
	i := slices.Index(steps, s.step)
	if i == 0 {
		return ErrNoPrevStep
	}
	s.step = steps[i-1]
	return nil
}

func (s *Session) require(step Step) error {
	if s.step != step {
		return fmt.Errorf("%w: in %s, need %s", ErrWrongStep, s.step, step)
	}
	return nil
}

// AddPerson adds someone to the bill.
func (s *Session) AddPerson(name string) (models.Person, error) {
	if err := s.require(StepPeople); err != nil {
		return models.Person{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Person{}, ErrEmptyName
	}
	p := models.Person{ID: s.newID(), Name: name}
	s.bill.People = append(s.bill.People, p)
	return p, nil
}

// RemovePerson drops a person and unassigns them from every item.
func (s *Session) RemovePerson(id string) error {
	if err := s.require(StepPeople); err != nil {
		return err
	}
	i := slices.IndexFunc(s.bill.People, func(p models.Person) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPerson, id)
	}
	s.bill.People = slices.Delete(s.bill.People, i, i+1)
	for j := range s.bill.Items {
		s.bill.Items[j].AssignedTo = slices.DeleteFunc(s.bill.Items[j].AssignedTo, func(pid string) bool { return pid == id })
	}
	return nil
}

// AddItem adds an unassigned item.
func (s *Session) AddItem(name string, price decimal.Decimal) (models.Item, error) {
	if err := s.require(StepItems); err != nil {
		return models.Item{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Item{}, ErrEmptyName
	}
	if price.IsNegative() {
		return models.Item{}, fmt.Errorf("%w: %s", ErrNegativeAmount, price)
	}
	item := models.Item{ID: s.newID(), Name: name, Price: price, AssignedTo: []string{}}
	s.bill.Items = append(s.bill.Items, item)
	return item.Clone(), nil
}

// AddLineItems appends scanned receipt lines as unassigned items. Lines with
// an empty name or a negative price are skipped.
func (s *Session) AddLineItems(lines []receipt.LineItem) ([]models.Item, error) {
	if err := s.require(StepItems); err != nil {
		return nil, err
	}
	added := make([]models.Item, 0, len(lines))
	for _, line := range lines {
		item, err := s.AddItem(line.Name, line.Price)
		if err != nil {
			continue
		}
		added = append(added, item)
	}
	return added, nil
}

// RemoveItem drops an item.
func (s *Session) RemoveItem(id string) error {
	if err := s.require(StepItems); err != nil {
		return err
	}
	i, err := s.itemIndex(id)
	if err != nil {
		return err
	}
	s.bill.Items = slices.Delete(s.bill.Items, i, i+1)
	return nil
}

// ToggleAssignment assigns the person to the item, or unassigns them if
// they already were.
func (s *Session) ToggleAssignment(itemID, personID string) error {
	if err := s.require(StepItems); err != nil {
		return err
	}
	i, err := s.itemIndex(itemID)
	if err != nil {
		return err
	}
	if _, ok := s.bill.Person(personID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPerson, personID)
	}

	item := &s.bill.Items[i]
	if item.IsAssigned(personID) {
		item.AssignedTo = slices.DeleteFunc(item.AssignedTo, func(id string) bool { return id == personID })
	} else {
		item.AssignedTo = append(item.AssignedTo, personID)
	}
	return nil
}

// AssignEveryone shares the item across every person on the bill.
func (s *Session) AssignEveryone(itemID string) error {
	if err := s.require(StepItems); err != nil {
		return err
	}
	i, err := s.itemIndex(itemID)
	if err != nil {
		return err
	}
	ids := make([]string, len(s.bill.People))
	for j, p := range s.bill.People {
		ids[j] = p.ID
	}
	s.bill.Items[i].AssignedTo = ids
	return nil
}

// SetSubtotal records the subtotal printed on the receipt. It is kept for
// display only; the split uses the assigned item prices.
func (s *Session) SetSubtotal(amount decimal.Decimal) error {
	if err := s.require(StepTotals); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	s.bill.Subtotal = amount
	return nil
}

// SetTax sets the absolute tax amount.
func (s *Session) SetTax(amount decimal.Decimal) error {
	if err := s.require(StepTotals); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	s.bill.Tax = amount
	return nil
}

// SetTip sets the tip policy.
func (s *Session) SetTip(tip models.Tip) error {
	if err := s.require(StepTotals); err != nil {
		return err
	}
	if tip.Value.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, tip.Value)
	}
	if !tip.IsFixed() {
		tip.Kind = models.TipPercent
	}
	s.bill.Tip = tip
	return nil
}

// ToggleTipKind switches between percentage and fixed tips. The value is
// reset to zero so 20% never silently becomes $20.
func (s *Session) ToggleTipKind() error {
	if err := s.require(StepTotals); err != nil {
		return err
	}
	if s.bill.Tip.IsFixed() {
		s.bill.Tip = models.PercentTip(decimal.Zero)
	} else {
		s.bill.Tip = models.FixedTip(decimal.Zero)
	}
	return nil
}

func (s *Session) itemIndex(id string) (int, error) {
	i := slices.IndexFunc(s.bill.Items, func(item models.Item) bool { return item.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return i, nil
}
