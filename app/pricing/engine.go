// Package pricing implements the variant pricing engine: it holds the
// current option selection for a customisable product and derives the unit
// price from the base price plus the selected options' adjustments.
//
// The engine is a pure in-memory calculator. It never talks to storage and
// performs no rounding; currency formatting is a presentation concern.
package pricing

import (
	"errors"
	"fmt"
)

// NoneOptionID is the explicit empty selection accepted by optional groups.
// It is distinct from "unselected" and contributes a zero adjustment.
const NoneOptionID = "none"

var (
	// ErrUnknownGroup is returned when a selection names a group the
	// engine was not built with.
	ErrUnknownGroup = errors.New("pricing: unknown option group")

	// ErrUnknownOption is returned when a selection names an option that
	// does not belong to the group.
	ErrUnknownOption = errors.New("pricing: unknown option")

	// ErrSoldOut is returned when the named option is marked sold out.
	ErrSoldOut = errors.New("pricing: option is sold out")

	// ErrRequiredGroup is returned when "none" is selected on a group
	// that requires a concrete option.
	ErrRequiredGroup = errors.New("pricing: group requires a selection")
)

// Option is one selectable value within a group.
type Option struct {
	ID              string
	Name            string
	PriceAdjustment float64
	Detail          string
	DiameterMM      float64
	SoldOut         bool
}

// Group is one named axis of customisation with an ordered option list.
// Optional groups (Required == false) accept NoneOptionID.
type Group struct {
	ID       string
	Name     string
	Required bool
	Options  []Option
}

// Selection is the composed variant: one option per group (optional groups
// may carry none), a quantity, and the derived prices.
type Selection struct {
	Options   map[string]Option // group ID → selected option
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// Labels flattens the selection into group-ID → option-name pairs, the
// shape cart lines and order items snapshot.
func (s Selection) Labels() map[string]string {
	labels := make(map[string]string, len(s.Options))
	for groupID, opt := range s.Options {
		labels[groupID] = opt.Name
	}
	return labels
}

// TotalFunc receives the new unit price after every mutation.
type TotalFunc func(total float64)

// SelectionFunc receives the full composed selection after every mutation.
type SelectionFunc func(sel Selection)

// Engine maintains the current selection state for one product.
// It is not safe for concurrent use; build one per request or session.
type Engine struct {
	basePrice float64
	groups    []Group
	selected  map[string]string // group ID → option ID (NoneOptionID for optional groups)
	quantity  int

	onTotal     TotalFunc
	onSelection SelectionFunc
}

// New builds an engine with default selections: the first option of every
// required group, and "none" for optional groups.
func New(basePrice float64, groups []Group) *Engine {
	e := &Engine{
		basePrice: basePrice,
		groups:    groups,
		selected:  make(map[string]string, len(groups)),
		quantity:  1,
	}
	for _, g := range groups {
		switch {
		case g.Required && len(g.Options) > 0:
			e.selected[g.ID] = g.Options[0].ID
		default:
			e.selected[g.ID] = NoneOptionID
		}
	}
	return e
}

// OnTotal registers the price callback. Fired synchronously after every
// mutation, carrying the unit price only.
func (e *Engine) OnTotal(fn TotalFunc) { e.onTotal = fn }

// OnSelection registers the composed-selection callback. Fired synchronously
// after every mutation, alongside OnTotal.
func (e *Engine) OnSelection(fn SelectionFunc) { e.onSelection = fn }

// SelectOption replaces the current selection of groupID with optionID and
// recomputes. Unknown groups or options and sold-out options are rejected;
// the prior selection is left untouched on error.
func (e *Engine) SelectOption(groupID, optionID string) error {
	group, ok := e.group(groupID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, groupID)
	}

	if optionID == NoneOptionID {
		if group.Required {
			return fmt.Errorf("%w: %q", ErrRequiredGroup, groupID)
		}
		e.selected[groupID] = NoneOptionID
		e.notify()
		return nil
	}

	opt, ok := findOption(group, optionID)
	if !ok {
		return fmt.Errorf("%w: %q in group %q", ErrUnknownOption, optionID, groupID)
	}
	if opt.SoldOut {
		return fmt.Errorf("%w: %q", ErrSoldOut, optionID)
	}

	e.selected[groupID] = optionID
	e.notify()
	return nil
}

// SetQuantity sets the quantity, clamped to a minimum of 1. Values below 1
// are a no-op on the stored quantity, not an error, but callbacks still
// fire so hosts stay in sync.
func (e *Engine) SetQuantity(n int) {
	if n >= 1 {
		e.quantity = n
	}
	e.notify()
}

// Quantity returns the current quantity (always ≥ 1).
func (e *Engine) Quantity() int { return e.quantity }

// Total computes the unit price: base price plus the adjustment of every
// selected option. A "none" selection contributes zero. Deterministic and
// side-effect free.
func (e *Engine) Total() float64 {
	total := e.basePrice
	for _, g := range e.groups {
		id := e.selected[g.ID]
		if id == NoneOptionID || id == "" {
			continue
		}
		if opt, ok := findOption(g, id); ok {
			total += opt.PriceAdjustment
		}
	}
	return total
}

// Selection returns the full composed variant.
func (e *Engine) Selection() Selection {
	unit := e.Total()
	sel := Selection{
		Options:   make(map[string]Option, len(e.groups)),
		Quantity:  e.quantity,
		UnitPrice: unit,
		LineTotal: unit * float64(e.quantity),
	}
	for _, g := range e.groups {
		id := e.selected[g.ID]
		if id == NoneOptionID || id == "" {
			continue
		}
		if opt, ok := findOption(g, id); ok {
			sel.Options[g.ID] = opt
		}
	}
	return sel
}

// notify fires both callbacks after state has settled.
func (e *Engine) notify() {
	if e.onTotal != nil {
		e.onTotal(e.Total())
	}
	if e.onSelection != nil {
		e.onSelection(e.Selection())
	}
}

func (e *Engine) group(id string) (Group, bool) {
	for _, g := range e.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

func findOption(g Group, id string) (Option, bool) {
	for _, o := range g.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
