// Package errors provides structured, coded errors for the toolbox.
//
// Most of the toolbox deliberately absorbs failures: malformed bus
// subscriptions, unparsable prop values and component teardown failures are
// tolerated silently. The few failures that do reach a caller (configuration
// loading, share link generation, selector compilation, memoizing a nil
// function, CLI input) are reported as *ToolboxError values carrying a code
// from the registry.
//
// # Error Categories
//
//   - runtime: failures while using the library (nil memoize target)
//   - dom: markup parsing and selector compilation
//   - share: share link generation
//   - config: toolbox.json / toolbox.yaml loading and validation
//   - cli: command line and HTTP service failures
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("No toolbox.json found in ./site").
//	    WithSuggestion("Run 'toolbox init' or create toolbox.json manually")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Configuration file not found
//	//
//	//   No toolbox.json found in ./site
//	//
//	//   Hint: Run 'toolbox init' or create toolbox.json manually
package errors
