package config

// Model is the unified, format-agnostic representation of a project
// definition: the activity table plus the optional project-level settings
// consumed by the optimization models.
type Model struct {
	Settings   *Settings
	Activities []*Activity
}

// Settings holds project-wide parameters. All fields are optional; a nil
// pointer means the attribute was not declared.
type Settings struct {
	// DiscountRate is the continuous discount rate applied by the NPV
	// model's objective.
	DiscountRate *float64
	// Deadline is the target completion time enforced by the crashing
	// model.
	Deadline *float64
}

// Activity is the format-agnostic representation of a single row of the
// activity table. Order within Model.Activities is significant: the graph
// builder assigns 1-based ids in this order.
type Activity struct {
	Name         string
	Predecessors []string
	Duration     float64

	// NPV variant. Nil when the attribute was not declared.
	CashFlow *float64

	// Crashing variant. Nil when the attribute was not declared.
	MinDuration  *float64
	MaxDuration  *float64
	MarginalCost *float64
}
