package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/critpathgo/internal/config"
)

func writeProjectFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, "project.hcl", `
project {
  discount_rate = 0.05
  deadline      = 20 + 8
}

activity "start" {
  duration = 0
}

activity "A" {
  duration     = 5
  predecessors = ["start"]
  cash_flow    = -140
  min_duration = 3
  max_duration = 5
  marginal_cost = 7
}

activity "end" {
  duration     = 0
  predecessors = ["A"]
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, model.Settings)
	require.NotNil(t, model.Settings.DiscountRate)
	assert.Equal(t, 0.05, *model.Settings.DiscountRate)
	require.NotNil(t, model.Settings.Deadline)
	assert.Equal(t, 28.0, *model.Settings.Deadline, "attribute expressions are evaluated")

	require.Len(t, model.Activities, 3)

	cashFlow := -140.0
	minDur, maxDur, cost := 3.0, 5.0, 7.0
	want := &config.Activity{
		Name:         "A",
		Predecessors: []string{"start"},
		Duration:     5,
		CashFlow:     &cashFlow,
		MinDuration:  &minDur,
		MaxDuration:  &maxDur,
		MarginalCost: &cost,
	}
	if diff := cmp.Diff(want, model.Activities[1]); diff != "" {
		assert.Fail(t, "activity mismatch", diff)
	}

	start := model.Activities[0]
	assert.Nil(t, start.CashFlow)
	assert.Nil(t, start.MinDuration)
	assert.Empty(t, start.Predecessors)
}

func TestLoad_DirectoryMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "01_settings.hcl", `
project {
  deadline = 15
}

activity "start" {
  duration = 0
}
`)
	writeProjectFile(t, dir, "02_activities.hcl", `
activity "A" {
  duration     = 4
  predecessors = ["start"]
}

activity "end" {
  duration     = 0
  predecessors = ["A"]
}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Activities, 3)
	assert.Equal(t, "start", model.Activities[0].Name)
	assert.Equal(t, "end", model.Activities[2].Name)
	require.NotNil(t, model.Settings)
	assert.Equal(t, 15.0, *model.Settings.Deadline)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name: "duplicate activity name",
			content: `
activity "A" { duration = 1 }
activity "A" { duration = 2 }
`,
			wantMsg: "duplicate activity name",
		},
		{
			name: "negative duration",
			content: `
activity "A" { duration = -3 }
`,
			wantMsg: "negative duration",
		},
		{
			name: "min above max",
			content: `
activity "A" {
  duration     = 5
  min_duration = 6
  max_duration = 4
}
`,
			wantMsg: "min_duration",
		},
		{
			name: "one-sided crashing bounds",
			content: `
activity "A" {
  duration     = 5
  min_duration = 3
}
`,
			wantMsg: "only one of",
		},
		{
			name: "non-numeric duration",
			content: `
activity "A" { duration = "soon" }
`,
			wantMsg: "not a number",
		},
		{
			name: "missing duration",
			content: `
activity "A" {}
`,
			wantMsg: "failed to decode",
		},
		{
			name: "duplicate project block",
			content: `
project { deadline = 1 }
project { deadline = 2 }
`,
			wantMsg: "failed to decode",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeProjectFile(t, dir, "project.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}
