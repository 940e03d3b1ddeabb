// Package errors provides structured, actionable errors for the markup
// command line tool and the serving and publishing layers.
//
// The rendering core never wraps errors: a failed write is returned as-is.
// This package is used one level up, where a failure needs a code, an
// explanation and a hint for the person running the tool.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E001") that maps to a category, a
// short message, a longer detail and a documentation URL.
//
// # Usage
//
//	err := errors.New("E121").
//	    WithDetail("No markup.yaml or markup.json found in .").
//	    WithSuggestion("Pass --config or create markup.yaml")
//
//	errors.PrintError(err)
//	// ERROR E121: Configuration file not found
//	//
//	//   No markup.yaml or markup.json found in .
//	//
//	//   Hint: Pass --config or create markup.yaml
package errors
