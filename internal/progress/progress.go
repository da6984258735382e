// Package progress defines the callback contract transfers report through.
package progress

// Payload reports the state of one transfer. Within a transfer, Processed is
// monotonically non-decreasing and the final report satisfies
// Processed == Total.
type Payload struct {
	ID        string
	Processed int64
	Total     int64
}

// Func receives progress reports. It is invoked inline on the transfer's
// goroutine, strictly ordered within one transfer; implementations must be
// fast and must not block. No ordering holds across concurrent transfers.
type Func func(Payload)

// Report invokes f with p. A nil Func is a no-op, so callers that do not
// care about progress can pass nil.
func (f Func) Report(p Payload) {
	if f != nil {
		f(p)
	}
}
