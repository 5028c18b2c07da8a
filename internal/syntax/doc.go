/*
Package syntax finds and parses literal forms embedded in Go source.

A literal starts with a marker identifier (LIT by default) followed by one of
the three bodies:

	LIT[e1, e2, e3]                  list, trailing comma allowed
	LIT[elem; count]                 repeat
	LIT{k1 => v1, k2 => v2}          map, trailing comma allowed

Each form may name its container type, in which case the body is always
written in braces:

	LIT []uint32{1, 2, 3}
	LIT []uint32{42; 100}
	LIT map[string]string{"John" => "Sailor"}

Separators are only recognised at the top level of a body; commas inside
calls, composite literals and function literals belong to the element. A
semicolon inserted by the scanner at a line break is ignored, so bodies may be
spread over several lines. Literals may nest inside element expressions.

Every element is checked with go/parser before it is accepted. Errors are
reported as a go/scanner.ErrorList with positions in the scanned file.
*/
package syntax
