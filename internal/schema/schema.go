package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Project represents the optional `project` block of a project file. It
// carries the settings consumed by the optimization model builders rather
// than by the core graph analysis.
type Project struct {
	DiscountRate hcl.Expression `hcl:"discount_rate,optional"`
	Deadline     hcl.Expression `hcl:"deadline,optional"`
}

// Activity represents an `activity` block from a user's project file.
// Scalar attributes are captured as unevaluated expressions; the loader
// evaluates them into numbers during translation.
type Activity struct {
	Name         string         `hcl:"name,label"`
	Duration     hcl.Expression `hcl:"duration"`
	Predecessors []string       `hcl:"predecessors,optional"`

	// NPV variant.
	CashFlow hcl.Expression `hcl:"cash_flow,optional"`

	// Crashing variant.
	MinDuration  hcl.Expression `hcl:"min_duration,optional"`
	MaxDuration  hcl.Expression `hcl:"max_duration,optional"`
	MarginalCost hcl.Expression `hcl:"marginal_cost,optional"`
}

// FileRoot represents the top-level structure of a single project file.
// A project definition may be split across several files; the loader
// merges them in discovery order.
type FileRoot struct {
	Project    *Project    `hcl:"project,block"`
	Activities []*Activity `hcl:"activity,block"`
	Remain     hcl.Body    `hcl:",remain"`
}
