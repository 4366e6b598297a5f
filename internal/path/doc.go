// Package path parses heading paths into Tethers.
//
// Grammar:
//
//	path    := ['/'] step { sep step }
//	sep     := '.' | ','
//	step    := [heading] { '#' heading }
//
// "." descends to the child with the following heading. "," ascends to the
// parent; a heading after "," must match the parent's. "#tag" narrows the
// preceding step to nodes carrying that tag. A leading '/' or '.' anchors
// at the network root; other paths are relative to a supplied node.
//
//	/notes.todo        root | child('notes') | child('todo')
//	todo,              node(cur) | child('todo') | parent
//	.notes.todo#urgent root | child('notes') | child('todo', tag('urgent'))
//
// Parsing tokenizes the input, builds an index-linked AST arena and compiles
// it to a view.Tether.
package path
