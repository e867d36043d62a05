/*
 * gocoords.go, part of chemform.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// AddVec adds the vector vec to each vector of the matrix A, putting the
// result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A *Matrix, vec r3.Vec) {
	ar := A.NVecs()
	if ar != F.NVecs() {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		v := r3.Add(A.Vec(i), vec)
		F.SetVec(i, v.X, v.Y, v.Z)
	}
}

// SubVec subtracts the vector vec from each vector of the matrix A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A *Matrix, vec r3.Vec) {
	F.AddVec(A, r3.Scale(-1, vec))
}

// Centroid returns the geometric center of the vectors in F.
func (F *Matrix) Centroid() r3.Vec {
	var c r3.Vec
	n := F.NVecs()
	if n == 0 {
		return c
	}
	for i := 0; i < n; i++ {
		c = r3.Add(c, F.Vec(i))
	}
	return r3.Scale(1/float64(n), c)
}

// Dist returns the distance between the ith and jth vectors of F.
func (F *Matrix) Dist(i, j int) float64 {
	return r3.Norm(r3.Sub(F.Vec(i), F.Vec(j)))
}

// Angle returns the angle, in radians, between the vectors i->j and i->k.
func (F *Matrix) Angle(i, j, k int) float64 {
	vi := F.Vec(i)
	return Angle(r3.Sub(F.Vec(j), vi), r3.Sub(F.Vec(k), vi))
}

// Angle takes 2 vectors and calculate the angle in radians between them.
// It does not check for correctness or return errors!
func Angle(v1, v2 r3.Vec) float64 {
	normproduct := r3.Norm(v1) * r3.Norm(v2)
	argument := r3.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero || argument > 1 {
		argument = 1
	} else if math.Abs(argument+1) <= appzero || argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	if r == 0 {
		return "[]"
	}
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	for i := 0; i < r; i++ {
		row := F.Vec(i)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row.X, row.Y, row.Z)
			continue
		}
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row.X, row.Y, row.Z)
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}
