package util

import "sync/atomic"

// SafeCounter is an int counter safe for concurrent use.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a new SafeCounter.
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment increments the counter's value and returns the new value.
func (sc *SafeCounter) Increment() int {
	return int(sc.value.Add(1))
}

// Set sets the value of the counter.
func (sc *SafeCounter) Set(newValue int) {
	sc.value.Store(int64(newValue))
}

// Value returns the current value of the counter.
func (sc *SafeCounter) Value() int {
	return int(sc.value.Load())
}

// SafeFlag is a boolean flag safe for concurrent use.
type SafeFlag struct {
	value atomic.Bool
}

// NewSafeFlag creates a new SafeFlag.
func NewSafeFlag() *SafeFlag {
	return &SafeFlag{}
}

// NewSafeFlagWithValue creates a new SafeFlag with an initial value.
func NewSafeFlagWithValue(initialValue bool) *SafeFlag {
	sf := &SafeFlag{}
	sf.value.Store(initialValue)
	return sf
}

// Set sets the value of the flag and returns the new value.
func (sf *SafeFlag) Set(newValue bool) bool {
	sf.value.Store(newValue)
	return newValue
}

// Value returns the current value of the flag.
func (sf *SafeFlag) Value() bool {
	return sf.value.Load()
}

// Toggle toggles the value of the flag and returns the new value.
func (sf *SafeFlag) Toggle() bool {
	return sf.Set(!sf.Value())
}
