package scalar

import "math"

// Float is the plain float64 scalar used for ordinary simulation.
type Float float64

func (f Float) Add(o Float) Float       { return f + o }
func (f Float) Sub(o Float) Float       { return f - o }
func (f Float) Mul(o Float) Float       { return f * o }
func (f Float) Div(o Float) Float       { return f / o }
func (f Float) Scale(c float64) Float   { return f * Float(c) }
func (f Float) Neg() Float              { return -f }
func (f Float) Abs() Float              { return Float(math.Abs(float64(f))) }
func (f Float) Sin() Float              { return Float(math.Sin(float64(f))) }
func (f Float) Cos() Float              { return Float(math.Cos(float64(f))) }
func (f Float) Sqrt() Float             { return Float(math.Sqrt(float64(f))) }
func (f Float) FromFloat(v float64) Float { return Float(v) }
func (f Float) Float() float64          { return float64(f) }
