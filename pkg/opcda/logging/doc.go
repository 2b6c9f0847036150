// Package logging provides the structured logging abstraction shared across
// the opcda wrapper. The default implementation is backed by zerolog; the
// Nop logger keeps the library silent unless an application opts in.
package logging
