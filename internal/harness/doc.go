// Package harness runs YAML scenarios against a fresh network.
//
// A scenario lists steps (create, alias, erase, reorder, tag, move, title,
// body, reload) addressed by heading paths, followed by expectations on the
// final network. Every run uses sequential ids, so the rendered result is
// stable enough for golden comparison:
//
//	name: basic
//	description: nested creation
//	steps:
//	  - op: create
//	    path: /notes.todo
//	expect:
//	  - type: children
//	    path: /notes
//	    equals: [todo]
//
// A step may name the error code it must fail with. Steps keep running
// after a mismatch; every mismatch is collected in Result.Errors.
package harness
