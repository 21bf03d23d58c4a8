// Package report renders analysis results as terminal-friendly text: the
// per-activity schedule table, the parallel waves, and the critical path.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/critpathgo/internal/cpm"
	"github.com/vk/critpathgo/internal/dag"
)

// Schedule writes the schedule table, the wave grouping, and the critical
// path for a completed analysis.
func Schedule(w io.Writer, g *dag.ProjectGraph, res *cpm.Result, path *cpm.Path) {
	fmt.Fprintf(w, "%s makespan %s\n\n", bold("Project schedule:"), bold(trimFloat(res.Makespan)))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tACTIVITY\tDUR\tES\tEF\tLS\tLF\tFLOAT")
	for _, id := range res.Order {
		act := g.Activity(id)
		sched := res.Sched[id]
		label := act.Label
		if sched.Critical() {
			label = boldRed(label + " *")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			act.ID, label,
			trimFloat(act.Duration),
			trimFloat(sched.ES), trimFloat(sched.EF),
			trimFloat(sched.LS), trimFloat(sched.LF),
			trimFloat(sched.Float))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%s\n", bold("Waves:"))
	for _, wave := range res.Waves {
		labels := make([]string, 0, len(wave.ActivityIDs))
		for _, id := range wave.ActivityIDs {
			labels = append(labels, g.Activity(id).Label)
		}
		marker := " "
		if wave.HasCritical {
			marker = boldRed("*")
		}
		fmt.Fprintf(w, "  %s t=%s  %s\n", marker, trimFloat(wave.Start), strings.Join(labels, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", bold("Critical path:"))
	for _, e := range path.Edges {
		fmt.Fprintf(w, "  %s %s %s\n",
			boldRed(g.Activity(e.Src).Label), dim("→"), boldRed(g.Activity(e.Tgt).Label))
	}
}

// Times writes one resolved per-activity value column of a solved model,
// in id order.
func Times(w io.Writer, g *dag.ProjectGraph, title string, values map[int]float64) {
	fmt.Fprintln(w, bold(title))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, act := range g.Activities() {
		fmt.Fprintf(tw, "  %s\t%s\n", act.Label, cyan(trimFloat(values[act.ID])))
	}
	tw.Flush()
}

// trimFloat formats a time or float value without a trailing ".0" noise
// for integral values.
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
