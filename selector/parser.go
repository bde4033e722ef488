package selector

import (
	"strings"
	"unicode"

	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/nuget"
)

// Declaration is the parsed form of a complete build declaration.
type Declaration struct {
	Dependencies []nuget.Dependency
	// Foundation reports whether the built-in foundation namespaces were
	// opted into wholesale.
	Foundation bool
	Selectors  *Set
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokDot
	tokStar
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	span Range
}

// tokenize splits declaration text into tokens with byte-accurate spans.
func tokenize(src string) ([]token, error) {
	var tokens []token
	pt := newPositionTracker(src)

	for pt.offset < len(src) {
		c := src[pt.offset]

		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			pt.advanceBytes(1)
			continue
		}

		start := pt.mark()
		switch c {
		case '.':
			pt.advanceBytes(1)
			tokens = append(tokens, token{tokDot, ".", Range{start, pt.mark()}})
		case '*':
			pt.advanceBytes(1)
			tokens = append(tokens, token{tokStar, "*", Range{start, pt.mark()}})
		case '{':
			pt.advanceBytes(1)
			tokens = append(tokens, token{tokLBrace, "{", Range{start, pt.mark()}})
		case '}':
			pt.advanceBytes(1)
			tokens = append(tokens, token{tokRBrace, "}", Range{start, pt.mark()}})
		case ',':
			pt.advanceBytes(1)
			tokens = append(tokens, token{tokComma, ",", Range{start, pt.mark()}})
		case ':':
			pt.advanceBytes(1)
			tokens = append(tokens, token{tokColon, ":", Range{start, pt.mark()}})
		default:
			if !isIdentByte(c) {
				return nil, newParseError(ErrorKindSyntax, Range{start, start}, string(c),
					"unexpected character in declaration")
			}
			end := pt.offset
			for end < len(src) && isIdentByte(src[end]) {
				end++
			}
			text := src[pt.offset:end]
			pt.advanceBytes(end - pt.offset)
			tokens = append(tokens, token{tokIdent, text, Range{start, pt.mark()}})
		}
	}

	tokens = append(tokens, token{tokEOF, "", Range{pt.mark(), pt.mark()}})
	return tokens, nil
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '"' || c == '\'' || c == '`'
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }
func (p *parser) next() token { t := p.tokens[p.pos]; p.pos++; return t }
func (p *parser) atKeyword(kw string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == kw
}

// ParseDeclaration parses a complete build declaration:
// dependency list, optional foundation opt-in, and the selector set.
func ParseDeclaration(src string) (*Declaration, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}

	if !p.atKeyword("dependencies") {
		t := p.peek()
		return nil, newParseError(ErrorKindSyntax, t.span, t.text,
			"declaration must start with 'dependencies'",
			"begin with: dependencies os")
	}
	p.next()

	decl := &Declaration{Selectors: NewSet()}
	for !p.atKeyword("types") {
		dep, err := p.parseDependency()
		if err != nil {
			return nil, err
		}
		decl.Dependencies = append(decl.Dependencies, dep)
	}
	if len(decl.Dependencies) == 0 {
		t := p.peek()
		return nil, newParseError(ErrorKindSyntax, t.span, t.text,
			"at least one dependency is required before 'types'")
	}
	p.next() // types

	if p.atKeyword("foundation") {
		decl.Foundation = true
		p.next()
	}

	for p.peek().kind != tokEOF {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		decl.Selectors.Add(sel)
	}
	if decl.Selectors.Len() == 0 {
		t := p.peek()
		return nil, newParseError(ErrorKindSyntax, t.span, t.text,
			"at least one type selector is required after 'types'")
	}

	return decl, nil
}

// ParseSelectors parses bare selector syntax without the dependency
// preamble. Used by tooling that already knows its dependency set.
func ParseSelectors(src string) (*Set, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}

	set := NewSet()
	for p.peek().kind != tokEOF {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		set.Add(sel)
	}
	return set, nil
}

func (p *parser) parseDependency() (nuget.Dependency, error) {
	t := p.next()
	if t.kind != tokIdent {
		return nuget.Dependency{}, newParseError(ErrorKindSyntax, t.span, t.text,
			"expected a dependency ('os' or 'nuget: Package.Name')")
	}
	switch t.text {
	case "os":
		return nuget.OS(), nil
	case "nuget":
		if p.peek().kind != tokColon {
			return nuget.Dependency{}, newParseError(ErrorKindSyntax, p.peek().span, p.peek().text,
				"expected ':' after 'nuget'",
				"declare packages as: nuget: My.Package")
		}
		p.next()
		name, _, err := p.parseDottedName()
		if err != nil {
			return nuget.Dependency{}, err
		}
		return nuget.Package(name), nil
	default:
		return nuget.Dependency{}, newParseError(ErrorKindSyntax, t.span, t.text,
			"unknown dependency kind",
			"supported dependency kinds are 'os' and 'nuget: Package.Name'")
	}
}

// parseDottedName consumes ident ("." ident)* and returns the joined text.
func (p *parser) parseDottedName() (string, Range, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", t.span, newParseError(ErrorKindSyntax, t.span, t.text, "expected an identifier")
	}
	name := t.text
	span := t.span
	for p.peek().kind == tokDot {
		// Lookahead: the dot may belong to a selector tail, not the name.
		if p.tokens[p.pos+1].kind != tokIdent {
			break
		}
		p.next()
		seg := p.next()
		name += "." + seg.text
		span.End = seg.span.End
	}
	return name, span, nil
}

// parseSelector consumes one selection path with its tail.
func (p *parser) parseSelector() (Selector, error) {
	first := p.next()
	if first.kind != tokIdent {
		return Selector{}, newParseError(ErrorKindSyntax, first.span, first.text,
			"expected a namespace path")
	}

	segments := []string{first.text}
	span := first.span
	leafSpan := first.span

	for p.peek().kind == tokDot {
		p.next()
		t := p.next()
		switch t.kind {
		case tokIdent:
			segments = append(segments, t.text)
			span.End = t.span.End
			leafSpan = t.span
		case tokStar:
			span.End = t.span.End
			if err := p.requireSelectorEnd(); err != nil {
				return Selector{}, err
			}
			return p.finishSelector(segments, All, span)
		case tokLBrace:
			names, end, err := p.parseGroup()
			if err != nil {
				return Selector{}, err
			}
			span.End = end
			if err := p.requireSelectorEnd(); err != nil {
				return Selector{}, err
			}
			return p.finishSelector(segments, Named(names...), span)
		default:
			return Selector{}, newParseError(ErrorKindSyntax, t.span, t.text,
				"expected a path segment, '*' or '{' after '.'")
		}
	}

	// Bare trailing identifier: the last segment is a single type leaf.
	if len(segments) < 2 {
		return Selector{}, newParseError(ErrorKindSyntax, span, first.text,
			"a selector needs a namespace before its type",
			"select a whole namespace with '<namespace>.*'")
	}
	// Trailing syntax first: "a.b.c as D" is a rename rejection, not a
	// casing complaint about "c".
	if err := p.requireSelectorEnd(); err != nil {
		return Selector{}, err
	}
	leaf := segments[len(segments)-1]
	if err := p.checkLeaf(leaf, leafSpan); err != nil {
		return Selector{}, err
	}
	return p.finishSelector(segments[:len(segments)-1], Named(stripIdentNoise(leaf)), span)
}

// parseGroup consumes the members of "{" name ("," name)* "}", the
// opening brace already eaten.
func (p *parser) parseGroup() ([]string, Position, error) {
	var names []string
	for {
		t := p.next()
		if t.kind == tokRBrace && len(names) == 0 {
			return nil, t.span.End, newParseError(ErrorKindSyntax, t.span, t.text,
				"a type group must name at least one type")
		}
		if t.kind != tokIdent {
			return nil, t.span.End, newParseError(ErrorKindSyntax, t.span, t.text,
				"expected a type name inside the group")
		}
		if p.peek().kind == tokDot {
			return nil, t.span.End, newParseError(ErrorKindSyntax, p.peek().span, t.text+".",
				"a path cannot nest inside a type group",
				"split nested namespaces into separate selectors")
		}
		if err := p.checkLeaf(t.text, t.span); err != nil {
			return nil, t.span.End, err
		}
		names = append(names, stripIdentNoise(t.text))

		sep := p.next()
		switch sep.kind {
		case tokComma:
			continue
		case tokRBrace:
			return names, sep.span.End, nil
		default:
			return nil, sep.span.End, newParseError(ErrorKindSyntax, sep.span, sep.text,
				"expected ',' or '}' in type group")
		}
	}
}

// checkLeaf enforces the casing heuristic: namespace segments are
// conventionally lower/mixed case while type names carry an uppercase
// letter, so an all-lowercase leaf is a module path, not a type.
func (p *parser) checkLeaf(leaf string, span Range) error {
	for _, r := range stripIdentNoise(leaf) {
		if unicode.IsUpper(r) {
			return nil
		}
	}
	return &ParseError{
		Kind:    ErrorKindSemantic,
		Message: "'" + leaf + "' looks like a module, not a type",
		Span:    span,
		Token:   leaf,
		Suggestions: []string{
			"type names contain an uppercase letter",
			"to take every type in a namespace, end the path with '.*'",
		},
		Context: ErrorContextPlain,
	}
}

// requireSelectorEnd rejects trailing syntax after a complete selector:
// a path continuing past a tail, or rename syntax.
func (p *parser) requireSelectorEnd() error {
	t := p.peek()
	if t.kind == tokDot {
		return newParseError(ErrorKindSyntax, t.span, t.text,
			"a selector cannot continue after its type list")
	}
	if t.kind == tokIdent && t.text == "as" {
		return &ParseError{
			Err:     errors.ErrRenameUnsupported,
			Kind:    ErrorKindSemantic,
			Message: "renaming is not supported",
			Span:    t.span,
			Token:   t.text,
			Suggestions: []string{
				"remove the 'as' clause; generated types keep their metadata names",
			},
			Context: ErrorContextPlain,
		}
	}
	return nil
}

func (p *parser) finishSelector(segments []string, limit Limit, span Range) (Selector, error) {
	raw := strings.Join(segments, ".")
	return Selector{
		Namespace: RoughNamespace(raw),
		Raw:       raw,
		Limit:     limit,
		Span:      span,
	}, nil
}
