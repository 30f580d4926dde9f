// Package component mounts Go components on marked elements of a DOM tree.
//
// An element opts in with a data-component attribute naming an entry of a
// Registry. Attach scans a root for such elements and builds one instance
// per element; Detach tears every instance down again:
//
//	registry := component.Registry{
//	    "Counter": component.Class(NewCounter),
//	    "Tracker": component.Handler{Key: "tracking", Handler: newTracker},
//	}
//	instances := component.Attach(registry, page)
//	defer component.Detach(instances)
//
// # Props and Refs
//
// Components embed Base. NewBase derives Props from the caller's defaults
// overridden by the element's data-attributes, each decoded by DecodeValue,
// and Refs from descendants marked data-ref that belong to this component
// rather than to a nested one:
//
//	<div data-component="Counter" data-count="3" data-label="hi">
//	    <span data-ref="value"></span>
//	    <div data-component="Inner"><span data-ref="value"></span></div>
//	</div>
//
// yields Props{"count": 3.0, "label": "hi"} and a single "value" ref.
//
// # Collision Policy
//
// When several mount points resolve to the same instance key, PolicyAppend
// (the default) keeps every instance in document order while PolicyOverwrite
// keeps only the last one.
//
// # Failure Semantics
//
// Unknown component names and malformed registry entries are skipped, and
// errors or panics raised by Destroy are swallowed. Nothing in this package
// fails loudly on malformed markup.
package component
