package typedef

import (
	"fmt"
	"strings"
	"unicode"
)

// typeExpr is the parsed form of a type expression string such as
// "Map<String, Array<User>>": a head identifier with optional angle-bracket
// arguments.
type typeExpr struct {
	Head string
	Args []typeExpr
}

// parseTypeExpr parses src. Grammar: Ident ( '<' expr (',' expr)* '>' )?.
func parseTypeExpr(src string) (typeExpr, error) {
	p := &exprParser{src: src}
	e, err := p.expr()
	if err != nil {
		return typeExpr{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return typeExpr{}, fmt.Errorf("type expression %q: trailing input at offset %d", src, p.pos)
	}
	return e, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) expr() (typeExpr, error) {
	p.skipSpace()
	head := p.ident()
	if head == "" {
		return typeExpr{}, fmt.Errorf("type expression %q: expected identifier at offset %d", p.src, p.pos)
	}
	e := typeExpr{Head: head}
	p.skipSpace()
	if !p.eat('<') {
		return e, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return typeExpr{}, err
		}
		e.Args = append(e.Args, arg)
		p.skipSpace()
		if p.eat(',') {
			continue
		}
		if p.eat('>') {
			return e, nil
		}
		return typeExpr{}, fmt.Errorf("type expression %q: expected ',' or '>' at offset %d", p.src, p.pos)
	}
}

func (p *exprParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *exprParser) eat(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) skipSpace() {
	p.pos += len(p.src[p.pos:]) - len(strings.TrimLeft(p.src[p.pos:], " \t"))
}
