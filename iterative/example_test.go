package iterative_test

import (
	"fmt"

	"github.com/katalvlaran/itersolve/iterative"
	"github.com/katalvlaran/itersolve/matrix"
)

// ExampleGaussSeidel solves a strictly dominant 3×3 system.
func ExampleGaussSeidel() {
	a, _ := matrix.NewDenseFrom(3, 3, []float64{
		4, -1, 0,
		-1, 4, -1,
		0, -1, 4,
	})
	b := matrix.Vector{2, 4, 10}

	res, err := iterative.GaussSeidel(a, b, nil, 1e-10)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	x := res.Solution()
	fmt.Printf("converged=%v x=[%.6f %.6f %.6f]\n", res.Converged, x[0], x[1], x[2])
	// Output:
	// converged=true x=[1.000000 2.000000 3.000000]
}

// ExampleHistory_Each prints every iterate of a diagonal system, which is
// exact after one sweep and reported converged after the second.
func ExampleHistory_Each() {
	a, _ := matrix.NewDenseFrom(2, 2, []float64{2, 0, 0, 4})
	res, _ := iterative.Jacobi(a, matrix.Vector{2, 8}, nil, 1e-6)

	res.History.Each(func(sweep int, x matrix.Vector) bool {
		fmt.Println(sweep, x)
		return true
	})
	fmt.Println("sweeps:", res.Sweeps, "converged:", res.Converged)
	// Output:
	// 1 [1, 2]
	// 2 [1, 2]
	// sweeps: 2 converged: true
}
