package menu

import (
	"fmt"

	"dinner/internal/pkg/errs"
)

// ServingStyle is the presentation tier a dinner is served in. The style
// scales the dinner's base price and some dinners restrict which styles they
// may be ordered in.
type ServingStyle string

const (
	// StyleSimple is the default presentation at the base price.
	StyleSimple ServingStyle = "simple"

	// StyleGrand is the upgraded presentation at 1.3x the base price.
	StyleGrand ServingStyle = "grand"

	// StyleDeluxe is the premium presentation at 1.6x the base price.
	StyleDeluxe ServingStyle = "deluxe"
)

// styleMultipliers maps each serving style to its price multiplier.
func styleMultipliers() map[ServingStyle]float64 {
	return map[ServingStyle]float64{
		StyleSimple: 1.0,
		StyleGrand:  1.3,
		StyleDeluxe: 1.6,
	}
}

// ParseServingStyle converts raw input into a ServingStyle.
func ParseServingStyle(raw string) (ServingStyle, error) {
	style := ServingStyle(raw)
	if err := style.Validate(); err != nil {
		return "", err
	}
	return style, nil
}

// Validate checks that the style is one of the closed set.
func (s ServingStyle) Validate() error {
	if _, ok := styleMultipliers()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("serving style",
			fmt.Errorf("%q is not a valid serving style", string(s)))
	}
	return nil
}

// Multiplier returns the price multiplier for the style. Unknown styles fall
// back to the simple multiplier, matching how unvalidated legacy rows priced.
func (s ServingStyle) Multiplier() float64 {
	if m, ok := styleMultipliers()[s]; ok {
		return m
	}
	return 1.0
}

// IsUpgraded reports whether the style satisfies dinners that require an
// upgraded presentation (grand or deluxe).
func (s ServingStyle) IsUpgraded() bool {
	return s == StyleGrand || s == StyleDeluxe
}

func (s ServingStyle) String() string {
	return string(s)
}
