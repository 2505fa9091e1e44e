// Package discount computes the amount that remains after a percentage
// discount is applied to a base amount. Values are exact decimals; no
// floating point rounding happens between the inputs and the result.
package discount
