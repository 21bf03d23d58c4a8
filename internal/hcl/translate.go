// This file contains the logic for translating HCL schema structs into the
// format-agnostic project model defined in the config package.

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/critpathgo/internal/config"
	"github.com/vk/critpathgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalNumber evaluates a scalar HCL expression and converts the result to
// a float64. The expression must be a constant; no variables or functions
// are in scope for project files.
func evalNumber(expr hcl.Expression, attr, owner string) (float64, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid value for %s of activity %q: %w", attr, owner, diags)
	}

	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("value for %s of activity %q is not a number: %w", attr, owner, err)
	}

	var out float64
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return 0, fmt.Errorf("cannot read %s of activity %q: %w", attr, owner, err)
	}
	return out, nil
}

// evalOptionalNumber is evalNumber for attributes that may be absent. A
// nil expression yields a nil pointer.
func evalOptionalNumber(expr hcl.Expression, attr, owner string) (*float64, error) {
	if expr == nil {
		return nil, nil
	}
	// gohcl leaves optional expression fields as a null literal when the
	// attribute is omitted.
	if val, diags := expr.Value(nil); !diags.HasErrors() && val.IsNull() {
		return nil, nil
	}
	v, err := evalNumber(expr, attr, owner)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// translateProject converts the HCL project block into the agnostic model.
func (l *Loader) translateProject(p *schema.Project) (*config.Settings, error) {
	rate, err := evalOptionalNumber(p.DiscountRate, "discount_rate", "project")
	if err != nil {
		return nil, err
	}
	deadline, err := evalOptionalNumber(p.Deadline, "deadline", "project")
	if err != nil {
		return nil, err
	}
	return &config.Settings{DiscountRate: rate, Deadline: deadline}, nil
}

// translateActivity converts an HCL activity block into the agnostic model.
func (l *Loader) translateActivity(a *schema.Activity) (*config.Activity, error) {
	duration, err := evalNumber(a.Duration, "duration", a.Name)
	if err != nil {
		return nil, err
	}

	def := &config.Activity{
		Name:         a.Name,
		Predecessors: a.Predecessors,
		Duration:     duration,
	}

	if def.CashFlow, err = evalOptionalNumber(a.CashFlow, "cash_flow", a.Name); err != nil {
		return nil, err
	}
	if def.MinDuration, err = evalOptionalNumber(a.MinDuration, "min_duration", a.Name); err != nil {
		return nil, err
	}
	if def.MaxDuration, err = evalOptionalNumber(a.MaxDuration, "max_duration", a.Name); err != nil {
		return nil, err
	}
	if def.MarginalCost, err = evalOptionalNumber(a.MarginalCost, "marginal_cost", a.Name); err != nil {
		return nil, err
	}
	return def, nil
}

// validateModel checks the scalar fields of the merged model. Structural
// validation (predecessor resolution, cycles, start/sink convention) is
// the graph builder's job.
func validateModel(m *config.Model) error {
	seen := make(map[string]struct{}, len(m.Activities))
	for _, act := range m.Activities {
		if act.Name == "" {
			return fmt.Errorf("activity with empty name")
		}
		if _, dup := seen[act.Name]; dup {
			return fmt.Errorf("duplicate activity name %q", act.Name)
		}
		seen[act.Name] = struct{}{}

		if act.Duration < 0 {
			return fmt.Errorf("activity %q has negative duration %v", act.Name, act.Duration)
		}
		if (act.MinDuration == nil) != (act.MaxDuration == nil) {
			return fmt.Errorf("activity %q declares only one of min_duration/max_duration", act.Name)
		}
		if act.MinDuration != nil && *act.MinDuration > *act.MaxDuration {
			return fmt.Errorf("activity %q has min_duration %v greater than max_duration %v",
				act.Name, *act.MinDuration, *act.MaxDuration)
		}
		if act.MinDuration != nil && *act.MinDuration < 0 {
			return fmt.Errorf("activity %q has negative min_duration %v", act.Name, *act.MinDuration)
		}
	}
	return nil
}
