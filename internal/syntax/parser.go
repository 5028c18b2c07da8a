package syntax

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// item is a single scanned token.
type item struct {
	pos token.Pos
	tok token.Token
	lit string
}

// segment is the source range between two top-level separators of a body.
type segment struct {
	start, end int
	// sep is the separator that closed the segment: COMMA, SEMICOLON, or the
	// closing bracket of the body.
	sep    token.Token
	arrows []int // offsets of top-level `=>`
	nested []*Literal
	tokens int
}

type parser struct {
	file   *token.File
	src    []byte
	marker string
	items  []item
	errs   scanner.ErrorList
}

// Find scans Go source for literal forms introduced by marker and returns the
// outermost ones in source order. Literals written inside element
// expressions are attached to those expressions.
//
// The returned error, if any, is a scanner.ErrorList sorted by position.
func Find(filename string, src []byte, marker string) ([]*Literal, error) {
	fset := token.NewFileSet()
	p := &parser{
		file:   fset.AddFile(filename, -1, len(src)),
		src:    src,
		marker: marker,
	}
	p.scan()

	var lits []*Literal
	for i := 0; i < len(p.items); {
		if !p.isMarker(i) {
			i++
			continue
		}
		lit, next := p.parseLiteral(i)
		if lit != nil {
			lits = append(lits, lit)
		}
		i = next
	}

	p.errs.Sort()
	return lits, p.errs.Err()
}

func (p *parser) scan() {
	var s scanner.Scanner
	s.Init(p.file, p.src, func(pos token.Position, msg string) {
		p.errs.Add(pos, msg)
	}, 0)
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			return
		}
		p.items = append(p.items, item{pos: pos, tok: tok, lit: lit})
	}
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs.Add(p.file.Position(pos), fmt.Sprintf(format, args...))
}

func (p *parser) tok(i int) token.Token {
	if i < 0 || i >= len(p.items) {
		return token.EOF
	}
	return p.items[i].tok
}

func (p *parser) offset(i int) int {
	return p.file.Offset(p.items[i].pos)
}

// isMarker reports whether item i introduces a literal.
func (p *parser) isMarker(i int) bool {
	it := p.items[i]
	if it.tok != token.IDENT || it.lit != p.marker {
		return false
	}
	if p.tok(i-1) == token.PERIOD {
		return false
	}
	switch p.tok(i + 1) {
	case token.LBRACK, token.LBRACE, token.MAP:
		return true
	}
	return false
}

// startsType reports whether item i can begin the element type of a slice.
func (p *parser) startsType(i int) bool {
	switch p.tok(i) {
	case token.IDENT, token.MUL, token.LBRACK, token.LPAREN, token.MAP,
		token.CHAN, token.ARROW, token.FUNC, token.STRUCT, token.INTERFACE:
		return true
	}
	return false
}

// parseLiteral parses the literal whose marker is item i. It returns the
// literal, or nil after recording an error, and the index of the first item
// following it.
func (p *parser) parseLiteral(i int) (*Literal, int) {
	lit := &Literal{
		Start: p.offset(i),
		Pos:   p.file.Position(p.items[i].pos),
	}

	open := i + 1
	sequence := p.tok(open) == token.LBRACK
	if p.tok(open) == token.MAP || (sequence && p.tok(open+1) == token.RBRACK && p.startsType(open+2)) {
		typ, body, ok := p.parseType(open)
		if !ok {
			return nil, open
		}
		isMap, ok := p.checkType(open, typ)
		if !ok {
			return nil, body
		}
		lit.Type = typ
		sequence = !isMap
		open = body
	}

	segs, closer, ok := p.parseBody(open)
	if !ok {
		return nil, open + 1
	}
	lit.End = p.offset(closer) + 1

	if sequence {
		ok = p.sequence(lit, open, segs)
	} else {
		ok = p.mapping(lit, segs)
	}
	if !ok {
		return nil, closer + 1
	}
	return lit, closer + 1
}

// parseType collects the container type that starts at item i. It returns
// the type text and the index of the `{` opening the body.
func (p *parser) parseType(i int) (string, int, bool) {
	start := p.offset(i)
	depth := 0
	for k := i; k < len(p.items); k++ {
		switch p.items[k].tok {
		case token.LPAREN, token.LBRACK:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.LBRACE:
			prev := p.tok(k - 1)
			if depth == 0 && prev != token.STRUCT && prev != token.INTERFACE {
				return strings.TrimSpace(string(p.src[start:p.offset(k)])), k, true
			}
			depth++
		case token.SEMICOLON:
			if depth == 0 {
				p.errorf(p.items[k].pos, "expected { after literal type")
				return "", k, false
			}
		}
		if depth < 0 {
			p.errorf(p.items[k].pos, "unbalanced %s in literal type", p.items[k].tok)
			return "", k, false
		}
	}
	p.errorf(p.items[i].pos, "unterminated literal type")
	return "", len(p.items), false
}

// checkType validates the written container type and reports whether it is a
// map type.
func (p *parser) checkType(i int, typ string) (bool, bool) {
	expr, err := goparser.ParseExpr(typ)
	if err != nil {
		p.errorf(p.items[i].pos, "invalid literal type %q: %v", typ, firstError(err))
		return false, false
	}
	switch t := expr.(type) {
	case *ast.MapType:
		return true, true
	case *ast.ArrayType:
		if t.Len == nil {
			return false, true
		}
	}
	p.errorf(p.items[i].pos, "literal type %q must be a slice or map type", typ)
	return false, false
}

// parseBody splits the bracketed body opened at item open into top-level
// segments. It returns the segments and the index of the closing bracket.
func (p *parser) parseBody(open int) ([]segment, int, bool) {
	closer := token.RBRACE
	if p.tok(open) == token.LBRACK {
		closer = token.RBRACK
	}

	var segs []segment
	cur := segment{start: p.offset(open) + 1}
	depth := 0
	for k := open + 1; k < len(p.items); k++ {
		if p.isMarker(k) {
			nested, next := p.parseLiteral(k)
			if nested == nil {
				return nil, k, false
			}
			cur.nested = append(cur.nested, nested)
			cur.tokens++
			k = next - 1
			continue
		}

		it := p.items[k]
		if it.tok != token.COMMA && it.tok != token.SEMICOLON && (depth > 0 || it.tok != closer) {
			cur.tokens++
		}
		switch it.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if depth > 0 {
				depth--
				continue
			}
			if it.tok != closer {
				p.errorf(it.pos, "unexpected %s in literal, expected %s", it.tok, closer)
				return nil, k, false
			}
			cur.end, cur.sep = p.offset(k), closer
			return append(segs, cur), k, true
		case token.COMMA:
			if depth == 0 {
				cur.end, cur.sep = p.offset(k), token.COMMA
				segs = append(segs, cur)
				cur = segment{start: p.offset(k) + 1}
			}
		case token.SEMICOLON:
			// Newlines insert implicit semicolons; only a written one counts.
			if depth == 0 && it.lit == ";" {
				cur.end, cur.sep = p.offset(k), token.SEMICOLON
				segs = append(segs, cur)
				cur = segment{start: p.offset(k) + 1}
			}
		case token.ASSIGN:
			if depth > 0 {
				continue
			}
			if p.tok(k+1) == token.GTR && p.offset(k+1) == p.offset(k)+1 {
				cur.arrows = append(cur.arrows, p.offset(k))
				k++
				continue
			}
			p.errorf(it.pos, "unexpected = in literal")
			return nil, k, false
		}
	}

	p.errorf(p.items[open].pos, "unterminated literal, missing %s", closer)
	return nil, len(p.items), false
}

// sequence fills lit from the segments of a list or repeat body.
func (p *parser) sequence(lit *Literal, open int, segs []segment) bool {
	for _, seg := range segs {
		if len(seg.arrows) > 0 {
			p.errorf(p.file.Pos(seg.arrows[0]), "=> is only valid in map literals")
			return false
		}
	}

	repeat := false
	for _, seg := range segs {
		if seg.sep == token.SEMICOLON {
			repeat = true
		}
	}
	if !repeat {
		elems, ok := p.elements(segs)
		if !ok {
			return false
		}
		lit.Kind, lit.Elems = List, elems
		return true
	}

	if len(segs) != 2 || segs[0].sep != token.SEMICOLON {
		p.errorf(p.items[open].pos, "repeat literal must have the form [elem; count]")
		return false
	}
	elem, ok := p.expr(segs[0].start, segs[0].end, segs[0].nested)
	if !ok {
		return false
	}
	count, ok := p.expr(segs[1].start, segs[1].end, segs[1].nested)
	if !ok {
		return false
	}
	lit.Kind, lit.Elem, lit.Count = Repeat, elem, count
	return true
}

// mapping fills lit from the segments of a map body.
func (p *parser) mapping(lit *Literal, segs []segment) bool {
	for _, seg := range segs {
		if seg.sep == token.SEMICOLON {
			p.errorf(p.file.Pos(seg.end), "unexpected ; in map literal")
			return false
		}
	}

	lit.Kind = Map
	lit.Entries = []Entry{}
	for i, seg := range segs {
		if p.blank(seg) {
			if p.trailing(segs, i) {
				continue
			}
			p.errorf(p.file.Pos(seg.start), "missing map entry")
			return false
		}
		if len(seg.arrows) != 1 {
			msg := "map entry must have the form key => value"
			if len(seg.arrows) > 1 {
				msg = "map entry has more than one =>"
			}
			p.errorf(p.file.Pos(seg.start), "%s", msg)
			return false
		}

		arrow := seg.arrows[0]
		key, ok := p.expr(seg.start, arrow, seg.nested)
		if !ok {
			return false
		}
		value, ok := p.expr(arrow+len("=>"), seg.end, seg.nested)
		if !ok {
			return false
		}
		lit.Entries = append(lit.Entries, Entry{Key: key, Value: value})
	}
	return true
}

// elements turns comma separated segments into expressions, dropping a
// single trailing comma.
func (p *parser) elements(segs []segment) ([]Expr, bool) {
	elems := []Expr{}
	for i, seg := range segs {
		if p.blank(seg) {
			if p.trailing(segs, i) {
				continue
			}
			p.errorf(p.file.Pos(seg.start), "missing element")
			return nil, false
		}
		e, ok := p.expr(seg.start, seg.end, seg.nested)
		if !ok {
			return nil, false
		}
		elems = append(elems, e)
	}
	return elems, true
}

// trailing reports whether the blank segment i may be ignored: either the
// body is empty, or it follows the last comma.
func (p *parser) trailing(segs []segment, i int) bool {
	if len(segs) == 1 {
		return true
	}
	return i == len(segs)-1 && !p.blank(segs[i-1])
}

// blank reports whether seg holds nothing but white space and comments.
func (p *parser) blank(seg segment) bool {
	return seg.tokens == 0
}

// expr builds the expression occupying [start, end) and checks that it is a
// valid Go expression.
func (p *parser) expr(start, end int, nested []*Literal) (Expr, bool) {
	raw := string(p.src[start:end])
	text := strings.TrimSpace(raw)
	offset := start + strings.Index(raw, text)
	if text == "" {
		p.errorf(p.file.Pos(start), "missing expression")
		return Expr{}, false
	}

	e := Expr{Text: text, Offset: offset}
	for _, n := range nested {
		if n.Start >= offset && n.End <= offset+len(text) {
			e.Nested = append(e.Nested, n)
		}
	}

	// Nested literals are not Go yet; stand in an operand for them.
	check := Substitute(e, func(*Literal) string { return "nil" })
	if _, err := goparser.ParseExpr(check); err != nil {
		p.errorf(p.file.Pos(offset), "invalid expression %q: %v", text, firstError(err))
		return Expr{}, false
	}
	return e, true
}

// Substitute returns the text of e with every nested literal replaced by
// repl(literal).
func Substitute(e Expr, repl func(*Literal) string) string {
	if len(e.Nested) == 0 {
		return e.Text
	}
	var sb strings.Builder
	last := 0
	for _, n := range e.Nested {
		from, to := n.Start-e.Offset, n.End-e.Offset
		sb.WriteString(e.Text[last:from])
		sb.WriteString(repl(n))
		last = to
	}
	sb.WriteString(e.Text[last:])
	return sb.String()
}

func firstError(err error) string {
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		return list[0].Msg
	}
	return err.Error()
}
