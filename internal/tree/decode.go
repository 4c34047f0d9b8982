package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// handKeyLen is the length of a strategy hand key such as "AcKd".
const handKeyLen = 4

type options struct {
	validateSchema bool
}

// Option configures Parse.
type Option func(*options)

// WithSchemaValidation toggles checking the document against the embedded
// tree schema before decoding. It is on by default.
func WithSchemaValidation(enabled bool) Option {
	return func(o *options) {
		o.validateSchema = enabled
	}
}

// Parse decodes a JSON game tree. Any failure is a *ParseError.
func Parse(data []byte, opts ...Option) (*Tree, error) {
	o := options{validateSchema: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.validateSchema {
		if err := validateSchema(data); err != nil {
			return nil, &ParseError{Err: err}
		}
	}

	t := &Tree{}
	d := newDecoder(t, data)
	if _, err := d.readNode(0); err != nil {
		return nil, d.wrap(err)
	}
	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, d.wrap(errors.New("unexpected data after root object"))
	}
	return t, nil
}

// decoder streams one JSON document into the tree's arena.
type decoder struct {
	t   *Tree
	dec *json.Decoder
}

func newDecoder(t *Tree, data []byte) *decoder {
	return &decoder{t: t, dec: json.NewDecoder(bytes.NewReader(data))}
}

func (d *decoder) wrap(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &ParseError{Offset: d.dec.InputOffset(), Err: err}
}

// openObject consumes '{'. It reports false, without error, for null.
func (d *decoder) openObject() (bool, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return false, err
	}
	switch tok {
	case json.Delim('{'):
		return true, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected object, got %v", tok)
	}
}

func (d *decoder) closeObject() error {
	tok, err := d.dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('}') {
		return fmt.Errorf("expected end of object, got %v", tok)
	}
	return nil
}

func (d *decoder) readKey() (string, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func (d *decoder) readNode(depth int) (NodeID, error) {
	if depth > MaxDepth {
		return 0, fmt.Errorf("tree nests deeper than %d levels", MaxDepth)
	}

	ok, err := d.openObject()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("node must be an object")
	}

	// reserve the slot first so the root is always ID 0
	id := d.t.alloc()

	var n Node
	for d.dec.More() {
		key, err := d.readKey()
		if err != nil {
			return 0, err
		}
		if err := d.readField(&n, key, depth); err != nil {
			return 0, fmt.Errorf("field %q: %w", key, err)
		}
	}
	if err := d.closeObject(); err != nil {
		return 0, err
	}

	d.t.nodes[id] = n
	return id, nil
}

func (d *decoder) readField(n *Node, key string, depth int) error {
	switch key {
	case "node_type":
		return d.dec.Decode(&n.NodeType)
	case "player":
		return d.readInt(&n.Player)
	case "board":
		return d.dec.Decode(&n.Board)
	case "pot":
		return d.dec.Decode(&n.Pot)
	case "potSize":
		return d.dec.Decode(&n.PotSize)
	case "deal_number":
		return d.readInt(&n.DealNumber)
	case "actions":
		return d.dec.Decode(&n.Actions)
	case "childrens":
		br, err := d.readBranches(depth)
		n.Childrens = br
		return err
	case "dealcards":
		br, err := d.readBranches(depth)
		n.DealCards = br
		return err
	case "strategy":
		s, err := d.readStrategy()
		n.Strategy = s
		return err
	default:
		return d.readExtra(n, key, depth)
	}
}

// readInt decodes a JSON number with no fractional part, so 1.0 reads as 1.
func (d *decoder) readInt(dst **int) error {
	var v *float64
	if err := d.dec.Decode(&v); err != nil {
		return err
	}
	if v == nil {
		*dst = nil
		return nil
	}
	if *v != math.Trunc(*v) || *v < math.MinInt32 || *v > math.MaxInt32 {
		return fmt.Errorf("%v is not an integer", *v)
	}
	i := int(*v)
	*dst = &i
	return nil
}

func (d *decoder) readBranches(depth int) (*Branches, error) {
	ok, err := d.openObject()
	if err != nil || !ok {
		return nil, err
	}

	br := newBranches()
	for d.dec.More() {
		label, err := d.readKey()
		if err != nil {
			return nil, err
		}
		child, err := d.readNode(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("branch %q: %w", label, err)
		}
		br.set(label, child)
	}
	if err := d.closeObject(); err != nil {
		return nil, err
	}

	br.container = d.t.alloc()
	d.t.nodes[br.container] = Node{Fields: br}
	return br, nil
}

func (d *decoder) readStrategy() (*Strategy, error) {
	ok, err := d.openObject()
	if err != nil || !ok {
		return nil, err
	}

	s := &Strategy{}
	for d.dec.More() {
		key, err := d.readKey()
		if err != nil {
			return nil, err
		}
		switch key {
		case "actions":
			if err := d.dec.Decode(&s.Actions); err != nil {
				return nil, err
			}
		case "strategy":
			hands, err := d.readHandTable()
			if err != nil {
				return nil, err
			}
			s.Hands = hands
		default:
			var skip json.RawMessage
			if err := d.dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	}
	return s, d.closeObject()
}

func (d *decoder) readHandTable() (*HandTable, error) {
	ok, err := d.openObject()
	if err != nil || !ok {
		return nil, err
	}

	h := newHandTable()
	for d.dec.More() {
		key, err := d.readKey()
		if err != nil {
			return nil, err
		}
		// keys are measured in bytes everywhere downstream
		if len(key) != handKeyLen {
			return nil, fmt.Errorf("hand %q: key must be %d ASCII characters", key, handKeyLen)
		}
		var probs []float64
		if err := d.dec.Decode(&probs); err != nil {
			return nil, fmt.Errorf("hand %q: %w", key, err)
		}
		h.set(key, probs)
	}
	return h, d.closeObject()
}

// readExtra keeps object-valued fields as auxiliary nodes and drops the rest.
func (d *decoder) readExtra(n *Node, key string, depth int) error {
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	// objects that do not decode as nodes are not addressable
	mark := len(d.t.nodes)
	sub := newDecoder(d.t, trimmed)
	id, err := sub.readNode(depth + 1)
	if err != nil {
		d.t.nodes = d.t.nodes[:mark]
		return nil
	}
	if n.Fields == nil {
		n.Fields = newBranches()
	}
	n.Fields.set(key, id)
	return nil
}
