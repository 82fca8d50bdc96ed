// Package label defines the dense integer identity shared by every piece
// of searcher state: the class registry, the equivalence store, the work
// queue, and both rule stores all key their maps off a Label rather than
// off the class value itself.
package label

// Label is the dense, non-negative integer identity assigned to a class by
// ClassDB on first sight of its value. Labels are stable for the lifetime
// of a search and are never reclaimed.
type Label uint32

// None is not a valid label; ClassDB never assigns it. (ClassDB.Lookup
// reports a miss through its bool result, not through None.)
const None Label = ^Label(0)
