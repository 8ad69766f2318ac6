package models

import "github.com/shopspring/decimal"

// Person is one of the people splitting a bill.
type Person struct {
	// ID is unique and stable for the lifetime of the bill.
	ID string `json:"id"`

	// Name is the display name (e.g., "Alice").
	Name string `json:"name"`
}

// Item represents a single line item on a bill.
// Items can be shared among multiple people.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`

	// Name is the name of the item (e.g., "Pizza", "Beer").
	Name string `json:"name"`

	// Price is the pre-tax price of this item.
	Price decimal.Decimal `json:"price"`

	// AssignedTo is the set of person IDs who split this item.
	// If multiple people are assigned, the item is split equally among them.
	// An item assigned to nobody is not charged to anyone.
	AssignedTo []string `json:"assigned_to"`
}

// IsAssigned reports whether personID is one of the item's assignees.
func (i Item) IsAssigned(personID string) bool {
	for _, id := range i.AssignedTo {
		if id == personID {
			return true
		}
	}
	return false
}

// TipKind selects how Tip.Value is interpreted.
type TipKind string

const (
	// TipPercent means Tip.Value is a percentage of the assigned subtotal.
	TipPercent TipKind = "percent"
	// TipAmount means Tip.Value is a fixed currency amount.
	TipAmount TipKind = "amount"
)

// Tip is the tip policy of a bill.
type Tip struct {
	Kind  TipKind         `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// PercentTip returns a tip of pct percent of the subtotal.
func PercentTip(pct decimal.Decimal) Tip {
	return Tip{Kind: TipPercent, Value: pct}
}

// FixedTip returns a tip of a fixed amount.
func FixedTip(amount decimal.Decimal) Tip {
	return Tip{Kind: TipAmount, Value: amount}
}

// IsFixed reports whether the tip is a fixed amount. Anything that is not
// TipAmount is read as a percentage.
func (t Tip) IsFixed() bool {
	return t.Kind == TipAmount
}

// Bill is everything needed to split a shared check.
type Bill struct {
	// People is the ordered list of people splitting the bill.
	People []Person `json:"people"`

	// Items are the individual line items on the bill.
	Items []Item `json:"items"`

	// Subtotal is the subtotal as entered by the user. It is informational:
	// the allocation always uses the sum of assigned item prices instead.
	Subtotal decimal.Decimal `json:"subtotal"`

	// Tax is the absolute tax amount (not a rate).
	Tax decimal.Decimal `json:"tax"`

	// Tip is the tip policy.
	Tip Tip `json:"tip"`
}

// Person returns the person with the given ID.
func (b Bill) Person(id string) (Person, bool) {
	for _, p := range b.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Clone returns a deep copy of the bill.
func (b Bill) Clone() Bill {
	out := b
	out.People = append([]Person(nil), b.People...)
	out.Items = make([]Item, len(b.Items))
	for i, item := range b.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

// Clone returns a copy of the item that does not share its assignment slice.
func (i Item) Clone() Item {
	out := i
	out.AssignedTo = append([]string(nil), i.AssignedTo...)
	return out
}
