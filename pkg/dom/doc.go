// Package dom provides the element tree the toolbox operates on.
//
// Nodes are golang.org/x/net/html nodes, so markup parsed from a template,
// a file or an HTTP body can be scanned, mutated and rendered back without
// conversion. Element identity is pointer identity.
//
// # Building Trees
//
// Elements are created using variadic factory functions:
//
//	root := Div(Data("component", "Counter"), Data("count", "3"),
//	    Span(Data("ref", "label"), Text("0")),
//	    Button(Data("ref", "increment"), Text("+")),
//	)
//
// # Querying
//
// Query, QueryAll, Matches and Closest accept CSS selectors compiled with
// cascadia. QueryAll, like the browser's querySelectorAll, never returns the
// node it starts from.
//
// # Events
//
// Event carries pointer and click events through an event bus. Delegate
// narrows a handler to events whose target sits inside a matching element.
package dom
