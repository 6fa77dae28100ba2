// Package registry provides a small thread-safe generic registry used
// to back the engine's named-function table.
//
// The registry is read-heavy after construction: functions are
// registered once when an invocation is set up and then only looked up
// during evaluation, so it uses sync.RWMutex.
package registry
