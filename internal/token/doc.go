// Package token defines the lexical tokens of the Solidity subset accepted
// by the front end.
package token
