// Package bus provides a synchronous, in-process event bus.
//
// Subscribers register a callback handle under an event type. Dispatch
// invokes every callback subscribed to that type, in subscription order, on
// the calling goroutine:
//
//	b := bus.New()
//	onSave := bus.Func(func(payload any, e bus.Event) {
//	    fmt.Println("saved", payload)
//	})
//	b.Subscribe("save", onSave, nil)
//	b.Dispatch("save", "draft.md")
//
// # Callback Identity
//
// Go functions are not comparable, so callbacks are wrapped once in a
// *Callback handle and identified by that pointer. Subscribing the same
// handle twice under one type is a no-op, and the handle is what
// Unsubscribe takes back.
//
// # Payloads
//
// Options attached to a subscription can supply a DefaultPayload, used when
// Dispatch is called without one, and a PayloadFilter applied before the
// callback sees the payload. The callback also receives the unfiltered value
// as Event.RawPayload.
//
// # Failure Semantics
//
// Malformed subscriptions (empty type, nil callback) are ignored silently.
// A panicking callback is not recovered by the bus.
package bus
