// Package coords converts between the Cartesian equatorial state used for
// launch conditions and display and the polar and inverse-radius states the
// geodesic fields integrate.
package coords
