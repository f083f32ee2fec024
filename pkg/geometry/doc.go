/*
Package geometry holds the numeric side of kinetree: rigid 4x4 homogeneous transforms
and the construction of orthonormal, right-handed segment frames from two measured axes.

Vectors are gonum spatial/r3 values; matrix products and determinants go through gonum/mat.
Transforms are plain values: every operation returns a new Transform.
*/
package geometry
