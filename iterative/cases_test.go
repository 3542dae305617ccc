package iterative_test

import (
	"os"
	"testing"

	"github.com/katalvlaran/itersolve/iterative"
	"github.com/katalvlaran/itersolve/matrix"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// solverCase mirrors one entry of testdata/cases.yaml.
type solverCase struct {
	Name          string      `yaml:"name"`
	Method        string      `yaml:"method"`
	A             [][]float64 `yaml:"a"`
	B             []float64   `yaml:"b"`
	X0            []float64   `yaml:"x0"`
	Acc           float64     `yaml:"acc"`
	MaxIterations int         `yaml:"max_iterations"`
	Want          struct {
		Converged    bool      `yaml:"converged"`
		LimitReached bool      `yaml:"limit_reached"`
		Solution     []float64 `yaml:"solution"`
		Tol          float64   `yaml:"tol"`
		Sweeps       int       `yaml:"sweeps"`
		MaxSweeps    int       `yaml:"max_sweeps"`
	} `yaml:"want"`
}

func loadCases(t *testing.T) []solverCase {
	t.Helper()
	raw, err := os.ReadFile("testdata/cases.yaml")
	require.NoError(t, err)

	var cases []solverCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)

	return cases
}

func TestSolverCases(t *testing.T) {
	for _, tc := range loadCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			method, err := iterative.ParseMethod(tc.Method)
			require.NoError(t, err)

			var opts []iterative.Option
			if tc.MaxIterations > 0 {
				opts = append(opts, iterative.WithMaxIterations(tc.MaxIterations))
			}
			var x0 matrix.Vector
			if tc.X0 != nil {
				x0 = tc.X0
			}

			res, err := iterative.Solve(method, dense(t, tc.A), tc.B, x0, tc.Acc, opts...)
			require.NoError(t, err)
			require.Equal(t, tc.Want.Converged, res.Converged)
			require.Equal(t, tc.Want.LimitReached, res.LimitReached)
			if tc.Want.Sweeps > 0 {
				require.Equal(t, tc.Want.Sweeps, res.Sweeps)
			}
			if tc.Want.MaxSweeps > 0 {
				require.LessOrEqual(t, res.Sweeps, tc.Want.MaxSweeps)
			}
			if tc.Want.Solution != nil {
				require.InDeltaSlice(t, tc.Want.Solution, []float64(res.Solution()), tc.Want.Tol)
			}
		})
	}
}
