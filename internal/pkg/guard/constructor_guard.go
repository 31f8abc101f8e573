// Package guard holds the constructor guard used by commands, queries and value objects
// to reject zero values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embed it in a struct,
// set it with NewConstructorGuard inside the constructor, and call Validate before use:
//
//	type MenuQuery struct {
//	    search string
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMenuQuery(search string) MenuQuery {
//	    return MenuQuery{search: search, guard: guard.NewConstructorGuard()}
//	}
//
//	func (q MenuQuery) Validate() error {
//	    return q.guard.Validate(ErrMenuQueryIsNotConstructed)
//	}
//
// The zero value is "not constructed".
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
