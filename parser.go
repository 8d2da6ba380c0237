package dtab

import (
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// eof is the sentinel rune returned by parser.peek at end of input. It
// is chosen outside the valid rune range so it can never be confused
// with an actual input character, unlike the ordinal-255 sentinel the
// grammar this was ported from uses (see DESIGN.md).
const eof rune = -1

// parser is a single-pass, character-indexed recursive-descent parser
// with one rune of lookahead. It never backtracks past the current
// position; a production either consumes a prefix of the input or
// panics with a *ParseError, which the parseAll* entry points recover
// into a plain error return (mirroring (*parser).Parse's recover
// boundary in the grammar parser this was ported from).
type parser struct {
	input []rune
	pos   int
}

func newParser(s string) *parser {
	return &parser{input: []rune(s)}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() rune {
	if p.atEnd() {
		return eof
	}
	return p.input[p.pos]
}

func (p *parser) next() {
	p.pos++
}

// charDisp renders a rune the way ParseError's Expected/Found fields
// expect: a quoted character, or "end of input" for eof.
func charDisp(c rune) string {
	if c == eof {
		return "end of input"
	}
	return "'" + string(c) + "'"
}

// context renders the full input with the character at the current
// position bracketed, e.g. "/foo[^]bar", or "input[]" when at the end.
func (p *parser) context() string {
	if p.atEnd() {
		return string(p.input) + "[]"
	}
	return string(p.input[:p.pos]) + "[" + string(p.input[p.pos]) + "]" + string(p.input[p.pos+1:])
}

// illegal panics with a *ParseError built from expected, found (each
// already rendered via charDisp or a bare category name) and the
// current context.
func (p *parser) illegal(expected, found string) {
	panic(&ParseError{Expected: expected, Found: found, Context: p.context()})
}

func (p *parser) maybeEat(c rune) bool {
	if p.peek() != c {
		return false
	}
	p.next()
	return true
}

func (p *parser) eat(c rune) {
	if !p.maybeEat(c) {
		p.illegal(charDisp(c), charDisp(p.peek()))
	}
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// eatLine consumes up to and including the next newline, or to the end
// of input if none remains — used to skip a '#' comment.
func (p *parser) eatLine() {
	for !p.atEnd() && p.peek() != '\n' {
		p.next()
	}
	if !p.atEnd() {
		p.eat('\n')
	}
}

func (p *parser) eatWhitespace() {
	for {
		switch {
		case p.peek() == '#':
			p.eatLine()
		case isWhitespace(p.peek()):
			p.next()
		default:
			return
		}
	}
}

func (p *parser) ensureEnd() {
	if !p.atEnd() {
		p.illegal("end of input", charDisp(p.peek()))
	}
}

// finish is the common tail of every parseAll* entry point: trailing
// whitespace (and comments) are permitted, but anything else left over
// is a parse error.
func (p *parser) finish() {
	p.eatWhitespace()
	p.ensureEnd()
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func hexDigitVal(c rune) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), true
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, true
	}
	return 0, false
}

func (p *parser) parseHexChar() byte {
	v, ok := hexDigitVal(p.peek())
	if !ok {
		p.illegal("hex char", charDisp(p.peek()))
	}
	p.next()
	return v
}

// isShowable reports whether c may appear literally (unescaped) in a
// label: letters, digits, and the punctuation the grammar singles out.
func isShowable(c rune) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', ':', '.', '#', '$', '%', '-':
		return true
	}
	return false
}

func isLabelChar(c rune) bool {
	return isShowable(c) || c == '\\'
}

func isDentryPrefixElemChar(c rune) bool {
	return isLabelChar(c) || c == '*'
}

func isNumberChar(c rune) bool {
	return isDigit(c) || c == '.'
}

// parseLabel consumes one labelchar+ run: a mix of showable characters
// and \xHH byte escapes, accumulated as raw bytes and decoded as UTF-8
// once the run ends.
func (p *parser) parseLabel() string {
	var buf []byte
	for {
		c := p.peek()
		switch {
		case isShowable(c):
			p.next()
			buf = append(buf, byte(c))
		case c == '\\':
			p.next()
			p.eat('x')
			hi := p.parseHexChar()
			lo := p.parseHexChar()
			buf = append(buf, hi<<4|lo)
		default:
			p.illegal("label char", charDisp(c))
		}
		if !isLabelChar(p.peek()) {
			break
		}
	}
	return string(buf)
}

// parseNumber consumes a run of digits with at most one '.', and
// parses the result as a decimal weight. A lone "." is not a valid
// number: the found value here is rendered bare ("." with no quotes),
// matching the asymmetric message the grammar this was ported from
// produces for this one case (see DESIGN.md).
func (p *parser) parseNumber() *apd.Decimal {
	var sb strings.Builder
	seenDot := false
	for isNumberChar(p.peek()) {
		if p.peek() == '.' {
			if seenDot {
				p.illegal("number char", charDisp('.'))
			}
			seenDot = true
		}
		sb.WriteRune(p.peek())
		p.next()
	}
	raw := sb.String()
	if raw == "." {
		p.illegal("weight", ".")
	}
	d, err := parseWeight(raw)
	if err != nil {
		p.illegal("weight", raw)
	}
	return d
}

func (p *parser) parseDentryPrefixElem() Elem {
	if p.maybeEat('*') {
		return AnyElem
	}
	return Label(p.parseLabel())
}

// parseDentryPrefix parses "'/' (elem ('/' elem)*)?", where elem is a
// label or a '*' wildcard.
func (p *parser) parseDentryPrefix() Prefix {
	p.eatWhitespace()
	p.eat('/')
	if !isDentryPrefixElemChar(p.peek()) {
		return EmptyPrefix
	}
	var elems []Elem
	for {
		elems = append(elems, p.parseDentryPrefixElem())
		if !p.maybeEat('/') {
			break
		}
	}
	return Prefix{elems: elems}
}

// parsePath parses "'/' (label ('/' label)*)?".
func (p *parser) parsePath() Path {
	p.eatWhitespace()
	p.eat('/')
	if !isLabelChar(p.peek()) {
		return EmptyPath
	}
	var labels []string
	for {
		labels = append(labels, p.parseLabel())
		if !p.maybeEat('/') {
			break
		}
	}
	return Path{elems: labels}
}

// parseSimple parses a single NameTree term: a parenthesized tree, a
// path leaf, or one of the three terminal symbols.
func (p *parser) parseSimple() NameTree {
	p.eatWhitespace()
	switch p.peek() {
	case '(':
		p.next()
		tree := p.parseTree()
		p.eatWhitespace()
		p.eat(')')
		return tree
	case '/':
		return NewLeaf(p.parsePath())
	case '!':
		p.next()
		return Fail
	case '~':
		p.next()
		return Neg
	case '$':
		p.next()
		return Empty
	}
	p.illegal("simple", charDisp(p.peek()))
	panic("unreachable")
}

// parseWeighted parses an optional "number '*'" prefix followed by a
// simple term, producing a Weighted node (DefaultWeight if the prefix
// is absent).
func (p *parser) parseWeighted() NameTree {
	p.eatWhitespace()
	weight := DefaultWeight
	if isNumberChar(p.peek()) {
		weight = p.parseNumber()
		p.eatWhitespace()
		p.eat('*')
		p.eatWhitespace()
	}
	return NewWeighted(weight, p.parseSimple())
}

// parseTree1 parses a '&'-separated run of weighted terms. A single
// term collapses to its bare (unweighted-wrapper) tree; more than one
// term builds a Union.
func (p *parser) parseTree1() NameTree {
	var weights []NameTree
	for {
		weights = append(weights, p.parseWeighted())
		p.eatWhitespace()
		if !p.maybeEat('&') {
			break
		}
		p.eatWhitespace()
	}
	if len(weights) == 1 {
		return weights[0].(weighted).tree
	}
	u, err := NewUnion(weights...)
	if err != nil {
		// parseWeighted always returns a Weighted node, so NewUnion
		// cannot fail here.
		panic(err)
	}
	return u
}

// parseTree parses a '|'-separated run of parseTree1 terms. A single
// term collapses to itself; more than one builds an Alt.
func (p *parser) parseTree() NameTree {
	var trees []NameTree
	for {
		trees = append(trees, p.parseTree1())
		p.eatWhitespace()
		if !p.maybeEat('|') {
			break
		}
		p.eatWhitespace()
	}
	if len(trees) == 1 {
		return trees[0]
	}
	return NewAlt(trees...)
}

// parseDentry parses "prefix '=' '>' tree".
func (p *parser) parseDentry() Dentry {
	prefix := p.parseDentryPrefix()
	p.eatWhitespace()
	p.eat('=')
	p.eat('>')
	tree := p.parseTree()
	d, _ := NewDentry(prefix, tree)
	return d
}

// parseDtab parses a ';'-separated run of dentries, tolerating a
// trailing ';' and whitespace/comments around separators. An empty
// segment before a ';' (as in ";" or "/a=>/b;;/c=>/d") is a parse error.
func (p *parser) parseDtab() Dtab {
	var dentries []Dentry
	for {
		p.eatWhitespace()
		if !p.atEnd() {
			dentries = append(dentries, p.parseDentry())
			p.eatWhitespace()
		}
		if !p.maybeEat(';') {
			break
		}
	}
	return NewDtab(dentries...)
}

func recoverParseError(r any) error {
	if r == nil {
		return nil
	}
	if pe, ok := r.(*ParseError); ok {
		return pe
	}
	if e, ok := r.(error); ok {
		return e
	}
	panic(r)
}

// parseAllPath parses s as a Path in its entirety; an empty string is a
// parse error (the empty path is spelled "/").
func parseAllPath(s string) (result Path, err error) {
	defer func() { err = recoverParseError(recover()) }()
	p := newParser(s)
	result = p.parsePath()
	p.finish()
	return result, nil
}

// parseAllDentryPrefix parses s as a Prefix in its entirety. Unlike
// every other parseAll* entry point, an empty string is accepted here
// as a direct synonym for EmptyPrefix: the ordinary prefix grammar
// always requires a leading '/' (even an empty prefix is spelled "/"
// wherever it appears inside a dentry, e.g. the "/=>!" sentinel), but
// the top-level Prefix.read("") entry point is special-cased to accept
// the bare empty string too (spec: "parse_all_dentry_prefix('') ->
// Prefix.empty (no error)").
func parseAllDentryPrefix(s string) (result Prefix, err error) {
	defer func() { err = recoverParseError(recover()) }()
	if s == "" {
		return EmptyPrefix, nil
	}
	p := newParser(s)
	result = p.parseDentryPrefix()
	p.finish()
	return result, nil
}

// parseAllNameTree parses s as a NameTree in its entirety.
func parseAllNameTree(s string) (result NameTree, err error) {
	defer func() { err = recoverParseError(recover()) }()
	p := newParser(s)
	result = p.parseTree()
	p.finish()
	return result, nil
}

// parseAllDentry parses s as a Dentry in its entirety.
func parseAllDentry(s string) (result Dentry, err error) {
	defer func() { err = recoverParseError(recover()) }()
	p := newParser(s)
	result = p.parseDentry()
	p.finish()
	return result, nil
}

// parseAllDtab parses s as a Dtab in its entirety; an empty (or
// all-whitespace/comment) string yields EmptyDtab.
func parseAllDtab(s string) (result Dtab, err error) {
	defer func() { err = recoverParseError(recover()) }()
	p := newParser(s)
	result = p.parseDtab()
	p.finish()
	return result, nil
}
