package doc

// Node is a closed sum type; only the types in this file implement it.
type Node interface {
	node()
}

type (
	// Text is literal output. It must not contain '\n' unless it is an atomic
	// payload (a multi-line string); the Generator tracks the column either way.
	Text string

	// Line is a newline plus indent when the enclosing group is wrapped, nothing when flat.
	Line struct{}

	// SpaceOrLine is a single space when flat, a newline plus indent when wrapped.
	SpaceOrLine struct{}

	// HardLine is always a newline plus indent and forces every enclosing group to wrap.
	HardLine struct{}

	// Indent raises the indentation of its children by one level while wrapped.
	Indent []Node

	// Nodes is plain concatenation.
	Nodes []Node

	// Group is a unit of the wrap decision.
	Group struct {
		ID    int
		Nodes []Node
	}

	// IfWrap renders Node only when group ID was decided wrapped.
	IfWrap struct {
		ID   int
		Node Node
	}
)

func (Text) node()        {}
func (Line) node()        {}
func (SpaceOrLine) node() {}
func (HardLine) node()    {}
func (Indent) node()      {}
func (Nodes) node()       {}
func (Group) node()       {}
func (IfWrap) node()      {}
