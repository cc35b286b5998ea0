package quickcheck

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDescriptor parses the canonical textual form produced by
// Descriptor.Key, e.g. "mapping(string,sequence(integer))". The optional
// combinator accepts either one argument or a leading absence probability:
// "optional(integer)" and "optional(0.25,integer)" are both valid.
func ParseDescriptor(s string) (Descriptor, error) {
	p := &descParser{src: s}
	d, err := p.parse()
	if err != nil {
		return Descriptor{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Descriptor{}, p.errorf("trailing input at offset %d", p.pos)
	}
	return d, nil
}

type descParser struct {
	src string
	pos int
}

func (p *descParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s in %q", ErrBadDescriptor, fmt.Sprintf(format, args...), p.src)
}

func (p *descParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *descParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' || c == '.' || c == '+' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *descParser) expect(c byte) error {
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

// args parses a parenthesized, comma-separated descriptor list.
func (p *descParser) args(min, max int) ([]Descriptor, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var out []Descriptor
	for {
		p.skipSpace()
		d, err := p.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	if len(out) < min || (max >= 0 && len(out) > max) {
		return nil, p.errorf("wrong argument count %d", len(out))
	}
	return out, nil
}

func (p *descParser) parse() (Descriptor, error) {
	p.skipSpace()
	name := p.ident()
	switch name {
	case "boolean":
		return Bool(), nil
	case "integer":
		return Int(), nil
	case "float":
		return Float(), nil
	case "rune":
		return Rune(), nil
	case "string":
		return String(), nil
	case "bytes":
		return Bytes(), nil
	case "integer-range":
		lo, hi, err := p.intPair()
		if err != nil {
			return Descriptor{}, err
		}
		return IntRange(lo, hi), nil
	case "custom":
		if err := p.expect('('); err != nil {
			return Descriptor{}, err
		}
		inner := p.ident()
		if inner == "" {
			return Descriptor{}, p.errorf("empty custom type name")
		}
		if err := p.expect(')'); err != nil {
			return Descriptor{}, err
		}
		return Custom(inner), nil
	case "optional":
		return p.optional()
	case "sequence":
		elems, err := p.args(1, 1)
		if err != nil {
			return Descriptor{}, err
		}
		return Sequence(elems[0]), nil
	case "tuple":
		elems, err := p.args(1, -1)
		if err != nil {
			return Descriptor{}, err
		}
		return Tuple(elems...), nil
	case "choice":
		elems, err := p.args(1, -1)
		if err != nil {
			return Descriptor{}, err
		}
		return Choice(elems...), nil
	case "mapping":
		elems, err := p.args(2, 2)
		if err != nil {
			return Descriptor{}, err
		}
		return Mapping(elems[0], elems[1]), nil
	case "mapping-unique":
		elems, err := p.args(2, 2)
		if err != nil {
			return Descriptor{}, err
		}
		return UniqueMapping(elems[0], elems[1]), nil
	case "":
		return Descriptor{}, p.errorf("expected type name at offset %d", p.pos)
	default:
		return Descriptor{}, p.errorf("unknown type name %q", name)
	}
}

func (p *descParser) intPair() (int64, int64, error) {
	if err := p.expect('('); err != nil {
		return 0, 0, err
	}
	lo, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	if err := p.expect(','); err != nil {
		return 0, 0, err
	}
	hi, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	if err := p.expect(')'); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func (p *descParser) number() (int64, error) {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	v, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		return 0, p.errorf("bad integer at offset %d", start)
	}
	return v, nil
}

// optional parses "optional(T)" or "optional(p,T)".
func (p *descParser) optional() (Descriptor, error) {
	if err := p.expect('('); err != nil {
		return Descriptor{}, err
	}
	p.skipSpace()
	rest := p.src[p.pos:]
	comma := strings.IndexByte(rest, ',')
	prob := DefaultAbsentProbability
	if comma >= 0 {
		if f, err := strconv.ParseFloat(strings.TrimSpace(rest[:comma]), 64); err == nil {
			if f < 0 || f > 1 {
				return Descriptor{}, p.errorf("absence probability %g out of [0,1]", f)
			}
			prob = f
			p.pos += comma + 1
		}
	}
	elem, err := p.parse()
	if err != nil {
		return Descriptor{}, err
	}
	if err := p.expect(')'); err != nil {
		return Descriptor{}, err
	}
	return OptionalP(elem, prob), nil
}
