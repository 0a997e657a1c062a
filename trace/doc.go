// Package trace defines the observer invoked at the dispatcher's trace points.
//
// Trace points, in order, for one element-wise call:
//
//  1. OnDispatch: variant chosen and masking state read from the descriptor
//  2. OnLaunch: once per kernel launch, with its geometry
//  3. OnUnimplemented: instead of 2 for a variant with no kernel
//  4. OnComplete: always, with the call's duration and result
//
// Observers must be safe for concurrent use.
package trace
