package wizard

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/receipt"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewSession(t *testing.T) {
	s := NewSession()

	assert.Equal(t, StepPeople, s.Step())
	bill := s.Bill()
	assert.Empty(t, bill.People)
	assert.Empty(t, bill.Items)
	assert.Equal(t, models.TipPercent, bill.Tip.Kind)
	assert.True(t, bill.Tip.Value.Equal(decimal.NewFromInt(20)))
}

func TestSession_FullFlow(t *testing.T) {
	s := NewSession(sequentialIDs())

	alice, err := s.AddPerson("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", alice.Name)
	bob, err := s.AddPerson("Bob")
	require.NoError(t, err)
	require.NoError(t, s.Next())
	assert.Equal(t, StepItems, s.Step())

	pizza, err := s.AddItem("Pizza", d("20.00"))
	require.NoError(t, err)
	assert.Empty(t, pizza.AssignedTo, "new items start unassigned")
	require.NoError(t, s.AssignEveryone(pizza.ID))
	require.NoError(t, s.Next())
	assert.Equal(t, StepTotals, s.Step())

	require.NoError(t, s.SetTax(d("2.00")))
	require.NoError(t, s.Next())
	assert.Equal(t, StepResult, s.Step())

	breakdown := s.Breakdown()
	for _, p := range []models.Person{alice, bob} {
		split := breakdown[p.ID]
		require.NotNil(t, split, p.Name)
		assert.True(t, split.Total.Equal(d("13")), "%s total = %s", p.Name, split.Total)
	}

	assert.ErrorIs(t, s.Next(), ErrNoNextStep)
}

func TestSession_Navigation(t *testing.T) {
	s := NewSession()

	assert.ErrorIs(t, s.Back(), ErrNoPrevStep)
	assert.ErrorIs(t, s.Next(), ErrNoPeople)
	assert.Equal(t, StepPeople, s.Step())

	_, err := s.AddPerson("Alice")
	require.NoError(t, err)
	require.NoError(t, s.Next())
	require.NoError(t, s.Back())
	assert.Equal(t, StepPeople, s.Step())
	assert.Len(t, s.Bill().People, 1, "going back keeps what was entered")
}

func TestSession_WrongStep(t *testing.T) {
	s := NewSession()

	_, err := s.AddItem("Pizza", d("10"))
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.ErrorIs(t, s.SetTax(d("1")), ErrWrongStep)
	assert.ErrorIs(t, s.ToggleTipKind(), ErrWrongStep)

	_, err = s.AddPerson("Alice")
	require.NoError(t, err)
	require.NoError(t, s.Next())

	_, err = s.AddPerson("Bob")
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSession_Validation(t *testing.T) {
	s := NewSession()

	_, err := s.AddPerson("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, s.RemovePerson("nope"), ErrUnknownPerson)

	_, err = s.AddPerson("Alice")
	require.NoError(t, err)
	require.NoError(t, s.Next())

	_, err = s.AddItem("", d("1"))
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = s.AddItem("Refund", d("-1"))
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.ErrorIs(t, s.RemoveItem("nope"), ErrUnknownItem)
	assert.ErrorIs(t, s.ToggleAssignment("nope", "nope"), ErrUnknownItem)

	item, err := s.AddItem("Tea", d("3"))
	require.NoError(t, err)
	assert.ErrorIs(t, s.ToggleAssignment(item.ID, "ghost"), ErrUnknownPerson)

	require.NoError(t, s.Next())
	assert.ErrorIs(t, s.SetTax(d("-1")), ErrNegativeAmount)
	assert.ErrorIs(t, s.SetSubtotal(d("-1")), ErrNegativeAmount)
	assert.ErrorIs(t, s.SetTip(models.FixedTip(d("-1"))), ErrNegativeAmount)
}

func TestSession_ToggleAssignment(t *testing.T) {
	s := NewSession(sequentialIDs())
	alice, _ := s.AddPerson("Alice")
	require.NoError(t, s.Next())
	item, _ := s.AddItem("Soup", d("8"))

	require.NoError(t, s.ToggleAssignment(item.ID, alice.ID))
	assert.Equal(t, []string{alice.ID}, s.Bill().Items[0].AssignedTo)

	require.NoError(t, s.ToggleAssignment(item.ID, alice.ID))
	assert.Empty(t, s.Bill().Items[0].AssignedTo)
}

func TestSession_RemovePersonUnassigns(t *testing.T) {
	s := NewSession(sequentialIDs())
	alice, _ := s.AddPerson("Alice")
	bob, _ := s.AddPerson("Bob")
	require.NoError(t, s.Next())
	item, _ := s.AddItem("Fries", d("6"))
	require.NoError(t, s.AssignEveryone(item.ID))

	require.NoError(t, s.Back())
	require.NoError(t, s.RemovePerson(bob.ID))

	bill := s.Bill()
	assert.Equal(t, []models.Person{alice}, bill.People)
	assert.Equal(t, []string{alice.ID}, bill.Items[0].AssignedTo)
	assert.True(t, s.Breakdown()[alice.ID].Subtotal.Equal(d("6")))
}

func TestSession_RemoveItem(t *testing.T) {
	s := NewSession(sequentialIDs())
	_, _ = s.AddPerson("Alice")
	require.NoError(t, s.Next())
	a, _ := s.AddItem("A", d("1"))
	b, _ := s.AddItem("B", d("2"))

	require.NoError(t, s.RemoveItem(a.ID))
	items := s.Bill().Items
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestSession_AddLineItems(t *testing.T) {
	s := NewSession(sequentialIDs())
	_, _ = s.AddPerson("Alice")
	require.NoError(t, s.Next())

	added, err := s.AddLineItems([]receipt.LineItem{
		{Name: "Burger", Price: d("12.50")},
		{Name: "", Price: d("1")},
		{Name: "Void", Price: d("-3")},
		{Name: "Shake", Price: d("5")},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Burger", added[0].Name)
	assert.Equal(t, "Shake", added[1].Name)
	assert.True(t, s.ItemsTotal().Equal(d("17.50")))

	// Scanned items are unassigned, so nothing is charged yet.
	for _, split := range s.Breakdown() {
		assert.True(t, split.Total.IsZero())
	}
}

func TestSession_Tip(t *testing.T) {
	s := NewSession()
	_, _ = s.AddPerson("Alice")
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	require.NoError(t, s.ToggleTipKind())
	assert.Equal(t, models.FixedTip(decimal.Zero), s.Bill().Tip)

	require.NoError(t, s.SetTip(models.FixedTip(d("8"))))
	require.NoError(t, s.ToggleTipKind())
	tip := s.Bill().Tip
	assert.Equal(t, models.TipPercent, tip.Kind)
	assert.True(t, tip.Value.IsZero())

	require.NoError(t, s.SetTip(models.Tip{Kind: "", Value: d("15")}))
	assert.Equal(t, models.TipPercent, s.Bill().Tip.Kind)
}

func TestSession_BillIsACopy(t *testing.T) {
	s := NewSession()
	_, _ = s.AddPerson("Alice")

	bill := s.Bill()
	bill.People[0].Name = "Mallory"

	assert.Equal(t, "Alice", s.Bill().People[0].Name)
}

func TestSession_Reset(t *testing.T) {
	s := NewSession()
	_, _ = s.AddPerson("Alice")
	require.NoError(t, s.Next())

	s.Reset()
	assert.Equal(t, StepPeople, s.Step())
	assert.Empty(t, s.Bill().People)
}

func TestSession_UUIDs(t *testing.T) {
	s := NewSession()
	a, _ := s.AddPerson("Alice")
	b, _ := s.AddPerson("Bob")
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}
