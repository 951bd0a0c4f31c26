package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fournest/mpsub/moviepilot"
)

var tasks = []moviepilot.DownloadTask{
	{Title: "Westworld", Season: "S02", Progress: 42.5, State: moviepilot.StateDownloading, Speed: "2.4 MB/s"},
	{Title: "Inception", Progress: 100, State: moviepilot.StateSeeding},
	{Title: "Severance", Progress: 7, State: moviepilot.StatePaused},
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)

	_, err = Compile("   ")
	assert.Error(t, err)

	_, err = Compile("Progress >")
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`Progress > 50`, []string{"Inception"}},
		{`State == "downloading"`, []string{"Westworld"}},
		{`State != "seeding"`, []string{"Westworld", "Severance"}},
		{`contains(Title, "WEST")`, []string{"Westworld"}},
		{`startsWith(Title, "sev") && Progress < 10`, []string{"Severance"}},
		{`Speed != ""`, []string{"Westworld"}},
		{`Progress >= 0`, []string{"Westworld", "Inception", "Severance"}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())

			var got []string
			for _, task := range f.Apply(tasks) {
				got = append(got, task.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEmptyResult(t *testing.T) {
	f, err := Compile(`Progress > 200`)
	require.NoError(t, err)

	matched := f.Apply(tasks)
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}
