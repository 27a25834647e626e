// Package conv provides checked integer conversions.
//
// Row numbers and positions are uint32; Go slice lengths are int. These
// helpers guard the boundary where a length becomes a size.
package conv
