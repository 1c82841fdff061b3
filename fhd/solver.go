package fhd

import "github.com/relsynth/relsynth/relerr"

// CompareOp is a linear constraint's relational operator.
type CompareOp int

const (
	OpLE CompareOp = iota
	OpGE
	OpEQ
)

// LinearExpr is a linear combination of declared variables plus a
// constant: sum(Coeffs[v] * v) + Const.
type LinearExpr struct {
	Coeffs map[string]float64
	Const  float64
}

// Term returns the single-variable expression coeff*name.
func Term(name string, coeff float64) LinearExpr {
	return LinearExpr{Coeffs: map[string]float64{name: coeff}}
}

// Add returns e + other.
func (e LinearExpr) Add(other LinearExpr) LinearExpr {
	out := LinearExpr{Coeffs: make(map[string]float64), Const: e.Const + other.Const}
	for k, v := range e.Coeffs {
		out.Coeffs[k] += v
	}
	for k, v := range other.Coeffs {
		out.Coeffs[k] += v
	}
	return out
}

// Constraint is one linear constraint: Expr Op 0, i.e. sum+Const Op 0.
type Constraint struct {
	Expr LinearExpr
	Op   CompareOp
}

// Solver is the abstraction boundary through which ComputeFHD solves
// each candidate bag's fractional-edge-cover LP, per the Design
// Notes' recommendation to keep the concrete numerical solver behind
// an interface. Declare introduces a real variable, Assert records a
// constraint, Minimize sets the objective, Check attempts to solve,
// and Model reads back the optimal assignment after a successful
// Check.
type Solver interface {
	Declare(name string)
	Assert(c Constraint)
	Minimize(objective LinearExpr)
	Check() (bool, error)
	Model() map[string]float64
}

// bruteSolver is relsynth's only Solver implementation: a small dense
// Big-M simplex (simplexMinimize) over the declared variables. No SAT/ILP/SMT solver
// library appears anywhere in the example corpus this module draws on,
// so there is nothing in the ecosystem surface observed here to wire
// instead; see DESIGN.md.
type bruteSolver struct {
	vars        []string
	index       map[string]int
	constraints []Constraint
	objective   LinearExpr
	model       map[string]float64
}

// NewSolver returns a fresh bruteSolver instance.
func NewSolver() Solver {
	return &bruteSolver{index: make(map[string]int)}
}

func (s *bruteSolver) Declare(name string) {
	if _, ok := s.index[name]; ok {
		return
	}
	s.index[name] = len(s.vars)
	s.vars = append(s.vars, name)
}

func (s *bruteSolver) Assert(c Constraint) {
	s.constraints = append(s.constraints, c)
}

func (s *bruteSolver) Minimize(objective LinearExpr) {
	s.objective = objective
}

func (s *bruteSolver) Check() (bool, error) {
	n := len(s.vars)
	c := make([]float64, n)
	for name, coeff := range s.objective.Coeffs {
		idx, ok := s.index[name]
		if !ok {
			return false, relerr.Precondition("fhd", "objective references undeclared variable %q", name)
		}
		c[idx] = coeff
	}

	var a [][]float64
	var ops []CompareOp
	var b []float64
	for _, cons := range s.constraints {
		row := make([]float64, n)
		for name, coeff := range cons.Expr.Coeffs {
			idx, ok := s.index[name]
			if !ok {
				return false, relerr.Precondition("fhd", "constraint references undeclared variable %q", name)
			}
			row[idx] = coeff
		}
		a = append(a, row)
		ops = append(ops, cons.Op)
		b = append(b, -cons.Expr.Const)
	}

	x, ok, err := simplexMinimize(c, a, ops, b)
	if err != nil {
		return false, relerr.Wrap(relerr.KindInternal, "fhd", "simplex failed", err)
	}
	if !ok {
		s.model = nil
		return false, nil
	}
	m := make(map[string]float64, n)
	for i, name := range s.vars {
		m[name] = x[i]
	}
	s.model = m
	return true, nil
}

func (s *bruteSolver) Model() map[string]float64 {
	return s.model
}
