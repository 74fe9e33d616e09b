package value

import (
	"strconv"
	"strings"
)

// String returns a human-readable rendering of the value tree. The exact
// format is part of the module's ordering behavior: the value comparator
// orders mappings by the lexicographic order of their renderings (see the
// order package), so the rendering is deterministic for a given mapping
// iteration order but intentionally not a semantic mapping order.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}

	var b strings.Builder
	v.render(&b)

	return b.String()
}

func (v *Value) render(b *strings.Builder) {
	switch v.kind {
	case KindNone:
		b.WriteString("None")

	case KindInteger:
		b.WriteString(strconv.FormatInt(v.num, 10))

	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.fp, 'g', -1, 64))

	case KindText:
		b.WriteString(strconv.Quote(v.text))

	case KindFixedSequence:
		v.renderSeq(b, '(', ')')

	case KindVariableSequence:
		v.renderSeq(b, '[', ']')

	case KindMapping:
		b.WriteByte('{')

		for i, p := range v.pairs {
			if i > 0 {
				b.WriteString(", ")
			}

			p.Key.render(b)
			b.WriteString(": ")
			p.Value.render(b)
		}

		b.WriteByte('}')
	}
}

func (v *Value) renderSeq(b *strings.Builder, open, clos byte) {
	b.WriteByte(open)

	for i, e := range v.seq {
		if i > 0 {
			b.WriteString(", ")
		}

		e.render(b)
	}

	b.WriteByte(clos)
}
