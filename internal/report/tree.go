package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/cbtool/pkg/cb"
)

// Node is a decoded field for dumping. Containers carry Fields instead of Value.
type Node struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Type   string `json:"type" yaml:"type"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
	Fields []Node `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Tree decodes f and its children.
func Tree(f cb.Field) Node {
	n := Node{Name: f.Name(), Type: f.Kind().String()}
	if f.IsObject() || f.IsArray() {
		n.Fields = []Node{}
		for child := range f.Fields() {
			n.Fields = append(n.Fields, Tree(child))
		}
		return n
	}
	n.Value = value(f)
	return n
}

func value(f cb.Field) any {
	var (
		v   any
		err error
	)
	switch {
	case f.IsNull():
		return nil
	case f.Type().IsBool():
		v, err = f.AsBool()
	case f.Kind() == cb.TypeIntegerPositive:
		v, err = f.AsUint64()
	case f.Kind() == cb.TypeIntegerNegative:
		v, err = f.AsInt64()
	case f.Kind() == cb.TypeFloat32 || f.Kind() == cb.TypeFloat64:
		var x float64
		x, err = f.AsFloat64()
		v = x
		// JSON has no NaN or Inf.
		if math.IsNaN(x) || math.IsInf(x, 0) {
			v = strconv.FormatFloat(x, 'g', -1, 64)
		}
	case f.Kind() == cb.TypeString:
		v, err = f.AsString()
	case f.Kind() == cb.TypeBinary:
		var b []byte
		b, err = f.AsBinary()
		v = hex.EncodeToString(b)
	case f.Type().IsHash():
		var h cb.Hash
		h, err = f.AsHash()
		v = h.String()
	case f.Kind() == cb.TypeUuid:
		var id uuid.UUID
		id, err = f.AsUuid()
		v = id.String()
	case f.Kind() == cb.TypeDateTime:
		var t time.Time
		t, err = f.AsDateTime()
		v = t.Format(time.RFC3339Nano)
	case f.Kind() == cb.TypeTimeSpan:
		var d time.Duration
		d, err = f.AsTimeSpan()
		v = d.String()
	default:
		return hex.EncodeToString(f.Payload())
	}
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return v
}

// WriteTree writes n as indented text, one field per line.
func WriteTree(w io.Writer, n Node) error {
	return writeNode(w, n, 0)
}

func writeNode(w io.Writer, n Node, depth int) error {
	line := strings.Repeat("  ", depth)
	if n.Name != "" {
		line += fmt.Sprintf("%q: ", n.Name)
	}
	line += n.Type
	if n.Fields == nil {
		switch v := n.Value.(type) {
		case nil:
		case string:
			line += fmt.Sprintf(" %q", v)
		default:
			line += fmt.Sprintf(" %v", v)
		}
	} else {
		line += fmt.Sprintf(" (%d)", len(n.Fields))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range n.Fields {
		if err := writeNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
