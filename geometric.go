/*
 * geometric.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"math"

	v3 "github.com/rmera/chemform/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

// Angle takes 2 vectors and calculate the angle in radians between them
// It does not check for correctness or return errors!
func Angle(v1, v2 r3.Vec) float64 {
	return v3.Angle(v1, v2)
}

// BondAngle returns the angle, in radians, formed by the atoms i, center and j of S.
func BondAngle(S *Structure, i, center, j int) float64 {
	c := S.Atom(center).Pos
	return Angle(r3.Sub(S.Atom(i).Pos, c), r3.Sub(S.Atom(j).Pos, c))
}

// Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd.
func Dihedral(a, b, c, d r3.Vec) float64 {
	bma := r3.Sub(b, a)
	cmb := r3.Sub(c, b)
	dmc := r3.Sub(d, c)
	bmascaled := r3.Scale(r3.Norm(cmb), bma)
	first := r3.Dot(bmascaled, r3.Cross(cmb, dmc))
	second := r3.Dot(r3.Cross(bma, cmb), r3.Cross(cmb, dmc))
	return math.Atan2(first, second)
}

// directions returns n unit vectors around the origin, following the
// VSEPR layout for n. For n > 6 the vectors follow a Fibonacci spiral over
// the sphere, which spaces them evenly but has no chemical meaning.
func directions(n int) *v3.Matrix {
	var data []float64
	switch n {
	case 0:
		return v3.Zeros(0)
	case 1:
		data = []float64{1, 0, 0}
	case 2:
		data = []float64{1, 0, 0, -1, 0, 0}
	case 3:
		s := math.Sqrt(3) / 2
		data = []float64{1, 0, 0, -0.5, s, 0, -0.5, -s, 0}
	case 4:
		//vertices of a cube with an even number of negative signs.
		data = []float64{1, 1, 1, -1, -1, 1, -1, 1, -1, 1, -1, -1}
	case 5:
		s := math.Sqrt(3) / 2
		data = []float64{1, 0, 0, -0.5, s, 0, -0.5, -s, 0, 0, 0, 1, 0, 0, -1}
	case 6:
		data = []float64{1, 0, 0, -1, 0, 0, 0, 1, 0, 0, -1, 0, 0, 0, 1, 0, 0, -1}
	default:
		data = make([]float64, 0, 3*n)
		golden := math.Pi * (3 - math.Sqrt(5))
		for i := 0; i < n; i++ {
			z := 1 - 2*(float64(i)+0.5)/float64(n)
			r := math.Sqrt(1 - z*z)
			phi := golden * float64(i)
			data = append(data, r*math.Cos(phi), r*math.Sin(phi), z)
		}
	}
	dirs, err := v3.NewMatrix(data)
	if err != nil {
		panic(err.Error()) //n>0 here, so this can't happen.
	}
	for i := 0; i < n; i++ {
		u := r3.Unit(dirs.Vec(i))
		dirs.SetVec(i, u.X, u.Y, u.Z)
	}
	return dirs
}

// layoutGeometry returns the geometry tag for a hub with n peripheral atoms.
func layoutGeometry(n int) Geometry {
	switch n {
	case 0:
		return Monatomic
	case 1, 2:
		return Linear
	case 3:
		return TrigonalPlanar
	case 4:
		return Tetrahedral
	case 5:
		return TrigonalBipyramidal
	case 6:
		return Octahedral
	}
	return Complex
}

// hybridization returns the hybridization tag for a hub with n peripheral atoms,
// or an empty string if none applies.
func hybridization(n int) string {
	switch n {
	case 2:
		return "sp"
	case 3:
		return "sp2"
	case 4:
		return "sp3"
	case 5:
		return "sp3d"
	case 6:
		return "sp3d2"
	}
	return ""
}

// freeDirection returns a unit vector pointing away from the atoms bonded to
// atom center of S. If the neighbours cancel out (or there are none), it returns
// the coordinate axis that maximizes the smallest angle to the existing bonds.
func freeDirection(S *Structure, center int) r3.Vec {
	c := S.Atom(center).Pos
	var sum r3.Vec
	var bonds []r3.Vec
	for _, n := range S.Neighbors(center) {
		if n < 0 || n >= S.Len() {
			continue
		}
		d := r3.Sub(S.Atom(n).Pos, c)
		if r3.Norm(d) <= appzero {
			continue
		}
		u := r3.Unit(d)
		bonds = append(bonds, u)
		sum = r3.Add(sum, u)
	}
	if r3.Norm(sum) > 1e-6 {
		return r3.Scale(-1, r3.Unit(sum))
	}
	axes := directions(6)
	best, bestangle := r3.Vec{X: 1}, -1.0
	for i := 0; i < axes.NVecs(); i++ {
		ax := axes.Vec(i)
		minangle := math.Pi
		for _, b := range bonds {
			minangle = math.Min(minangle, Angle(ax, b))
		}
		if minangle > bestangle+appzero {
			best, bestangle = ax, minangle
		}
	}
	return best
}
