package pricing

import "strconv"

// Unit selects the display unit for size-like options. Millimetres are the
// canonical stored unit; inches are derived for display only.
type Unit string

const (
	Millimeters Unit = "mm"
	Inches      Unit = "in"
)

const mmPerInch = 25.4

// FormatDiameter renders a stored millimetre dimension in the requested
// display unit. Inches are fixed to 3 decimal places (6mm → `0.236"`).
// The stored value is never mutated; switching units is purely cosmetic.
func FormatDiameter(mm float64, unit Unit) string {
	if unit == Inches {
		return strconv.FormatFloat(mm/mmPerInch, 'f', 3, 64) + `"`
	}
	return strconv.FormatFloat(mm, 'f', -1, 64) + "mm"
}
