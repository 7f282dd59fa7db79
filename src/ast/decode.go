// decode.go converts the JSON document an external parser produces into
// the Node tree the compiler core walks (spec.md §2.3's choice of JSON as
// the input AST's wire format, since no parser is in scope here). The
// wire shape mirrors Node field-for-field but spells NodeType and Op as
// strings rather than small integers, so a hand-written or generated
// front end doesn't need to know this package's enum values.
package ast

import (
	"encoding/json"
	"fmt"
)

type wireNode struct {
	Type string          `json:"type"`
	Line int             `json:"line"`
	Col  int             `json:"col"`
	Data json.RawMessage `json:"data,omitempty"`
	Op   string          `json:"op,omitempty"`

	Params []string `json:"params,omitempty"`

	Args     []wireNode `json:"args,omitempty"`
	Keywords int        `json:"keywords,omitempty"`
	Starred  bool       `json:"starred,omitempty"`

	Targets []wireNode `json:"targets,omitempty"`
	Target  *wireNode  `json:"target,omitempty"`
	AugOp   string     `json:"aug_op,omitempty"`

	Value *wireNode `json:"value,omitempty"`

	Left        *wireNode  `json:"left,omitempty"`
	Right       *wireNode  `json:"right,omitempty"`
	Ops         []string   `json:"ops,omitempty"`
	Comparators []wireNode `json:"comparators,omitempty"`

	Object  *wireNode `json:"object,omitempty"`
	Index   *wireNode `json:"index,omitempty"`
	IsSlice bool      `json:"is_slice,omitempty"`

	Elts []wireNode `json:"elts,omitempty"`

	Test   *wireNode  `json:"test,omitempty"`
	Body   []wireNode `json:"body,omitempty"`
	Orelse []wireNode `json:"orelse,omitempty"`
}

var typeByName map[string]NodeType
var opByName map[string]Op

func init() {
	typeByName = make(map[string]NodeType, len(nt))
	for i, name := range nt {
		typeByName[name] = NodeType(i)
	}
	opByName = make(map[string]Op, len(opNames))
	for i, name := range opNames {
		if name == "" {
			continue
		}
		opByName[name] = Op(i)
	}
}

// Decode parses a JSON-encoded module document into a Node tree.
func Decode(data []byte) (*Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode ast: %w", err)
	}
	return w.toNode()
}

func (w *wireNode) toNode() (*Node, error) {
	if w == nil {
		return nil, nil
	}

	typ, ok := typeByName[w.Type]
	if !ok {
		return nil, fmt.Errorf("decode ast: unknown node type %q at line %d", w.Type, w.Line)
	}

	n := &Node{
		Typ:      typ,
		Line:     w.Line,
		Col:      w.Col,
		Params:   w.Params,
		Keywords: w.Keywords,
		Starred:  w.Starred,
		IsSlice:  w.IsSlice,
	}

	if w.Op != "" {
		op, ok := opByName[w.Op]
		if !ok {
			return nil, fmt.Errorf("decode ast: unknown operator %q at line %d", w.Op, w.Line)
		}
		n.Op = op
	}
	if w.AugOp != "" {
		op, ok := opByName[w.AugOp]
		if !ok {
			return nil, fmt.Errorf("decode ast: unknown operator %q at line %d", w.AugOp, w.Line)
		}
		n.AugOp = op
	}

	if len(w.Data) > 0 {
		var raw interface{}
		if err := json.Unmarshal(w.Data, &raw); err != nil {
			return nil, fmt.Errorf("decode ast: %w", err)
		}
		switch v := raw.(type) {
		case float64:
			n.Data = int(v)
		case string:
			n.Data = v
		default:
			return nil, fmt.Errorf("decode ast: unsupported data payload at line %d", w.Line)
		}
	}

	var err error
	if n.Args, err = toNodeSlice(w.Args); err != nil {
		return nil, err
	}
	if n.Targets, err = toNodeSlice(w.Targets); err != nil {
		return nil, err
	}
	if n.Target, err = w.Target.toNode(); err != nil {
		return nil, err
	}
	if n.Value, err = w.Value.toNode(); err != nil {
		return nil, err
	}
	if n.Left, err = w.Left.toNode(); err != nil {
		return nil, err
	}
	if n.Right, err = w.Right.toNode(); err != nil {
		return nil, err
	}
	if n.Ops, err = toOpSlice(w.Ops); err != nil {
		return nil, err
	}
	if n.Comparators, err = toNodeSlice(w.Comparators); err != nil {
		return nil, err
	}
	if n.Object, err = w.Object.toNode(); err != nil {
		return nil, err
	}
	if n.Index, err = w.Index.toNode(); err != nil {
		return nil, err
	}
	if n.Elts, err = toNodeSlice(w.Elts); err != nil {
		return nil, err
	}
	if n.Test, err = w.Test.toNode(); err != nil {
		return nil, err
	}
	if n.Body, err = toNodeSlice(w.Body); err != nil {
		return nil, err
	}
	if n.Orelse, err = toNodeSlice(w.Orelse); err != nil {
		return nil, err
	}

	return n, nil
}

func toNodeSlice(ws []wireNode) ([]*Node, error) {
	if ws == nil {
		return nil, nil
	}
	out := make([]*Node, len(ws))
	for i := range ws {
		n, err := ws[i].toNode()
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func toOpSlice(ss []string) ([]Op, error) {
	if ss == nil {
		return nil, nil
	}
	out := make([]Op, len(ss))
	for i, s := range ss {
		op, ok := opByName[s]
		if !ok {
			return nil, fmt.Errorf("decode ast: unknown operator %q", s)
		}
		out[i] = op
	}
	return out, nil
}
