package fhd

import (
	"fmt"
	"math"
)

// simplexMinimize solves: minimize c^T x subject to a[i]^T x {op[i]} b[i]
// for every row i, and x >= 0. It returns the optimal x, whether the
// problem was feasible, and an error only for malformed input (mismatched
// row lengths). Implemented as a dense Big-M simplex tableau: every row
// gets a slack/surplus column (sign depends on op) and every GE/EQ row
// additionally gets an artificial column penalized by a large constant M
// in the objective, which is the standard way to bootstrap a feasible
// basis without a separate phase-one solve. Instances here are always
// small (one row per vertex in a single decomposition bag), so the
// straightforward tableau form is sufficient; no external LP library
// appears anywhere in the example corpus to reach for instead.
func simplexMinimize(c []float64, a [][]float64, ops []CompareOp, b []float64) ([]float64, bool, error) {
	n := len(c)
	m := len(a)
	if len(ops) != m || len(b) != m {
		return nil, false, fmt.Errorf("simplex: %d constraint rows but %d ops and %d bounds", m, len(ops), len(b))
	}
	for i := range a {
		if len(a[i]) != n {
			return nil, false, fmt.Errorf("simplex: row %d has %d coefficients, want %d", i, len(a[i]), n)
		}
	}
	const bigM = 1e7
	const eps = 1e-9

	// Normalize rows to have b[i] >= 0 by flipping sign (and op) if
	// needed.
	rows := make([][]float64, m)
	rb := make([]float64, m)
	rops := make([]CompareOp, m)
	for i := 0; i < m; i++ {
		row := append([]float64(nil), a[i]...)
		bi := b[i]
		op := ops[i]
		if bi < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			bi = -bi
			switch op {
			case OpLE:
				op = OpGE
			case OpGE:
				op = OpLE
			}
		}
		rows[i] = row
		rb[i] = bi
		rops[i] = op
	}

	// Column layout: [original n] [slack/surplus per row] [artificial per GE/EQ row]
	slackCol := make([]int, m)
	artCol := make([]int, m)
	numExtra := 0
	for i := 0; i < m; i++ {
		slackCol[i] = n + numExtra
		numExtra++
	}
	numArt := 0
	for i := 0; i < m; i++ {
		if rops[i] != OpLE {
			artCol[i] = n + numExtra + numArt
			numArt++
		} else {
			artCol[i] = -1
		}
	}
	totalCols := n + numExtra + numArt

	tableau := make([][]float64, m)
	for i := 0; i < m; i++ {
		tableau[i] = make([]float64, totalCols+1)
		copy(tableau[i][:n], rows[i])
		switch rops[i] {
		case OpLE:
			tableau[i][slackCol[i]] = 1
		case OpGE:
			tableau[i][slackCol[i]] = -1
			tableau[i][artCol[i]] = 1
		case OpEQ:
			tableau[i][artCol[i]] = 1
		}
		tableau[i][totalCols] = rb[i]
	}

	basis := make([]int, m)
	for i := 0; i < m; i++ {
		if artCol[i] >= 0 {
			basis[i] = artCol[i]
		} else {
			basis[i] = slackCol[i]
		}
	}

	obj := make([]float64, totalCols+1)
	for j := 0; j < n; j++ {
		obj[j] = c[j]
	}
	for i := 0; i < m; i++ {
		if artCol[i] >= 0 {
			obj[artCol[i]] = bigM
		}
	}

	// Reduced-cost row: z_j - c_j, maintained so basic columns read 0.
	z := append([]float64(nil), obj...)
	for i := 0; i < m; i++ {
		coeff := obj[basis[i]]
		if coeff == 0 {
			continue
		}
		for j := 0; j <= totalCols; j++ {
			z[j] -= coeff * tableau[i][j]
		}
	}

	for iter := 0; iter < 2000; iter++ {
		// Choose entering column: most negative z_j.
		enter := -1
		best := -eps
		for j := 0; j < totalCols; j++ {
			if z[j] < best {
				best = z[j]
				enter = j
			}
		}
		if enter == -1 {
			break // optimal
		}
		// Ratio test.
		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if tableau[i][enter] > eps {
				ratio := tableau[i][totalCols] / tableau[i][enter]
				if ratio < bestRatio-eps {
					bestRatio = ratio
					leave = i
				}
			}
		}
		if leave == -1 {
			return nil, false, nil // unbounded, treat as infeasible for our use
		}
		// Pivot.
		pivot := tableau[leave][enter]
		for j := 0; j <= totalCols; j++ {
			tableau[leave][j] /= pivot
		}
		for i := 0; i < m; i++ {
			if i == leave {
				continue
			}
			factor := tableau[i][enter]
			if factor == 0 {
				continue
			}
			for j := 0; j <= totalCols; j++ {
				tableau[i][j] -= factor * tableau[leave][j]
			}
		}
		zFactor := z[enter]
		for j := 0; j <= totalCols; j++ {
			z[j] -= zFactor * tableau[leave][j]
		}
		basis[leave] = enter
	}

	// Infeasible if any artificial variable remains basic with positive value.
	for i := 0; i < m; i++ {
		if artCol[i] >= 0 && basis[i] == artCol[i] && tableau[i][totalCols] > 1e-6 {
			return nil, false, nil
		}
	}

	x := make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			x[basis[i]] = tableau[i][totalCols]
		}
	}
	return x, true, nil
}
