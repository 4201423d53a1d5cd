// Package errors provides structured error types for the optbridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the foreign symbol
// involved, the element type name, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindMissingSymbol).
//		Symbol("optbridge1$optional$u32$has_value").
//		Element("u32").
//		Detail("foreign object does not export this element type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingSymbol("u32", symbolName)
//	err := errors.OutOfBounds(errors.PhaseLift, ptr, length)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree.
package errors
