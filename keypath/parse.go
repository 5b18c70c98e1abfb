package keypath

import (
	"errors"
	"strconv"
	"strings"

	kagami "github.com/reoring/kagami"
)

// Parse reads the canonical textual form back into a Path. Errors are
// reported as kagami.Issues with the byte offset of the offending segment.
func Parse(input string) (Path, error) {
	var p parser
	p.input = input
	segs, err := p.run()
	if err != nil {
		return Path{}, err
	}
	return Path{segs: segs}, nil
}

// MustParse is Parse for statically known paths.
func MustParse(input string) Path {
	p, err := Parse(input)
	if err != nil {
		panic("keypath: " + err.Error())
	}
	return p
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errAt(offset int, code string, detail string) error {
	iss := kagami.NewIssue(p.input, code)
	iss.Offset = offset
	if detail != "" {
		iss.Message += ": " + detail
	}
	return kagami.Issues{iss}
}

func (p *parser) run() ([]Segment, error) {
	var segs []Segment
	for p.pos < len(p.input) {
		start := p.pos
		switch p.input[p.pos] {
		case '.':
			p.pos++
			seg, err := p.fieldOrIndex(start)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		case ':':
			if !strings.HasPrefix(p.input[p.pos:], "::") {
				return nil, p.errAt(start, kagami.CodeBadSegment, "expected '::'")
			}
			p.pos += 2
			name := p.ident()
			if name == "" {
				return nil, p.errAt(start, kagami.CodeBadSegment, "missing variant name")
			}
			segs = append(segs, VariantSeg(name))
		case '[':
			p.pos++
			seg, err := p.bracket(start)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		default:
			return nil, p.errAt(start, kagami.CodeBadSegment, "expected '.', '[' or '::'")
		}
	}
	return segs, nil
}

// fieldOrIndex parses what follows a '.': digits mean a positional field,
// an identifier means a named field.
func (p *parser) fieldOrIndex(start int) (Segment, error) {
	if p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		digits := p.digits()
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Segment{}, p.errAt(start, kagami.CodeBadSegment, "index out of range")
		}
		return IndexSeg(n), nil
	}
	name := p.ident()
	if name == "" {
		return Segment{}, p.errAt(start, kagami.CodeBadSegment, "missing field name")
	}
	return FieldSeg(name), nil
}

// bracket parses the literal between '[' and ']'. Integers canonicalize to
// int64, floats to float64, quoted strings and runes to their kinds.
func (p *parser) bracket(start int) (Segment, error) {
	if p.pos >= len(p.input) {
		return Segment{}, p.errAt(start, kagami.CodeTruncated, "unterminated '['")
	}
	var key kagami.Value
	switch p.input[p.pos] {
	case '"':
		raw, err := p.quoted('"')
		if err != nil {
			return Segment{}, p.errAt(start, kagami.CodeParseError, err.Error())
		}
		s, err := strconv.Unquote(raw)
		if err != nil {
			return Segment{}, p.errAt(start, kagami.CodeParseError, "bad string literal")
		}
		key = kagami.Str(s)
	case '\'':
		raw, err := p.quoted('\'')
		if err != nil {
			return Segment{}, p.errAt(start, kagami.CodeParseError, err.Error())
		}
		c, _, tail, err := strconv.UnquoteChar(raw[1:len(raw)-1], '\'')
		if err != nil || tail != "" {
			return Segment{}, p.errAt(start, kagami.CodeParseError, "bad char literal")
		}
		key = kagami.Char(c)
	default:
		end := strings.IndexByte(p.input[p.pos:], ']')
		if end < 0 {
			return Segment{}, p.errAt(start, kagami.CodeTruncated, "unterminated '['")
		}
		lit := p.input[p.pos : p.pos+end]
		p.pos += end
		v, err := parseBareLiteral(lit)
		if err != nil {
			return Segment{}, p.errAt(start, kagami.CodeParseError, err.Error())
		}
		key = v
	}
	if p.pos >= len(p.input) || p.input[p.pos] != ']' {
		return Segment{}, p.errAt(start, kagami.CodeTruncated, "unterminated '['")
	}
	p.pos++
	return KeySeg(key), nil
}

// quoted consumes a quote-delimited literal including both quotes,
// honoring backslash escapes.
func (p *parser) quoted(q byte) (string, error) {
	start := p.pos
	p.pos++ // opening quote
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '\\':
			p.pos += 2
		case q:
			p.pos++
			return p.input[start:p.pos], nil
		default:
			p.pos++
		}
	}
	return "", errUnterminated
}

var errUnterminated = errors.New("unterminated literal")

func parseBareLiteral(lit string) (kagami.Value, error) {
	switch lit {
	case "true":
		return kagami.Bool(true), nil
	case "false":
		return kagami.Bool(false), nil
	case "":
		return kagami.Value{}, strconv.ErrSyntax
	}
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return kagami.Value{}, err
		}
		return kagami.F64(f), nil
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		// Above the int64 range the literal keeps the uint64 kind.
		if u, uerr := strconv.ParseUint(lit, 10, 64); uerr == nil {
			return kagami.U64(u), nil
		}
		return kagami.Value{}, err
	}
	return kagami.I64(n), nil
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.input) && isIdent(p.input[p.pos], p.pos > start) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) digits() string {
	start := p.pos
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdent(c byte, notFirst bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return notFirst
	}
	return false
}
