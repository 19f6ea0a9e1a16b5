// Package builtins interns elementary types (uintN, intN, bytesN, address,
// bool, string, bytes and dynamic arrays of those) as graph nodes.
package builtins
