package forecaster

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-holtwinters/selection"
)

const (
	DefaultHorizon = 12

	// DefaultGuardrail is the fraction above and below the forecast drawn as min/max guardrails
	DefaultGuardrail = 0.08
)

var ErrInvalidGuardrail = errors.New("guardrail must be in [0, 1)")

// Options configures the forecaster
type Options struct {
	SelectionOptions *selection.Options `json:"selection_options"`
	Guardrail        float64            `json:"guardrail"`
}

// NewDefaultOptions returns the default forecaster settings
func NewDefaultOptions() *Options {
	return &Options{
		SelectionOptions: selection.NewDefaultOptions(),
		Guardrail:        DefaultGuardrail,
	}
}

// Validate runs basic validation on the options filling unset fields with defaults
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Guardrail < 0 || o.Guardrail >= 1 {
		return nil, fmt.Errorf("guardrail of %v, %w", o.Guardrail, ErrInvalidGuardrail)
	}
	selOpt, err := o.SelectionOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid selection options, %w", err)
	}
	o.SelectionOptions = selOpt
	return o, nil
}
