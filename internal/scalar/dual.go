package scalar

import "gonum.org/v1/gonum/num/dual"

// Dual is a forward-mode dual number: value part Real, derivative part Emag.
// Seeding Emag=1 on one generalized coordinate and evaluating the usual
// kinematics yields the partial derivative of every output with respect to
// that coordinate.
type Dual dual.Number

// NewDual builds a dual scalar with the given value and derivative parts.
func NewDual(value, deriv float64) Dual {
	return Dual{Real: value, Emag: deriv}
}

func (d Dual) Add(o Dual) Dual { return Dual(dual.Add(dual.Number(d), dual.Number(o))) }

func (d Dual) Sub(o Dual) Dual { return Dual{Real: d.Real - o.Real, Emag: d.Emag - o.Emag} }

func (d Dual) Mul(o Dual) Dual { return Dual(dual.Mul(dual.Number(d), dual.Number(o))) }

func (d Dual) Div(o Dual) Dual {
	return Dual(dual.Mul(dual.Number(d), dual.Inv(dual.Number(o))))
}

func (d Dual) Scale(c float64) Dual { return Dual(dual.Scale(c, dual.Number(d))) }

func (d Dual) Neg() Dual { return Dual{Real: -d.Real, Emag: -d.Emag} }

func (d Dual) Abs() Dual { return Dual(dual.Abs(dual.Number(d))) }

func (d Dual) Sin() Dual { return Dual(dual.Sin(dual.Number(d))) }

func (d Dual) Cos() Dual { return Dual(dual.Cos(dual.Number(d))) }

func (d Dual) Sqrt() Dual { return Dual(dual.Sqrt(dual.Number(d))) }

func (d Dual) FromFloat(v float64) Dual { return Dual{Real: v} }

func (d Dual) Float() float64 { return d.Real }

// Deriv reports the derivative part.
func (d Dual) Deriv() float64 { return d.Emag }
