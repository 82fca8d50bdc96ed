package combspec

import "fmt"

// SpecificationNotFoundError is the error AutoSearch returns to an
// embedder when a search ends without a specification (§7: "only
// SpecificationNotFound crosses the public boundary"); the only other
// error AutoSearch returns is an invalid Deadline in its config. It is
// recoverable: the caller may keep expanding and retry.
type SpecificationNotFoundError struct {
	// Root names the class the search was rooted at, for diagnostics.
	Root string
}

func (e *SpecificationNotFoundError) Error() string {
	return fmt.Sprintf("combspec: no specification found yet for root %s", e.Root)
}

// Is reports whether target is also a *SpecificationNotFoundError,
// ignoring Root, so errors.Is(err, &SpecificationNotFoundError{}) works
// without the caller needing to know the root.
func (e *SpecificationNotFoundError) Is(target error) bool {
	_, ok := target.(*SpecificationNotFoundError)
	return ok
}
