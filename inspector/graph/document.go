package graph

// Document represents flattened classes of a single header, ready for emission
type Document struct {
	Source  string   `yaml:"source"`
	Classes []*Class `yaml:"classes"`
}

// Class represents a class with all inherited methods flattened
type Class struct {
	Name            string    `yaml:"name"`
	Superclasses    []string  `yaml:"superclasses,omitempty"`
	ResolutionOrder []string  `yaml:"resolutionOrder"` // Contributing classes, root first
	Truncated       []string  `yaml:"truncated,omitempty"`
	Abstract        bool      `yaml:"abstract,omitempty"`
	Methods         []*Member `yaml:"methods"`
}

// Member represents a flattened method with its override chain
type Member struct {
	Name      string       `yaml:"name"`
	Signature string       `yaml:"signature,omitempty"`
	Comment   string       `yaml:"comment,omitempty"`
	Access    Access       `yaml:"access,omitempty"`
	Virtual   bool         `yaml:"virtual,omitempty"`
	Pure      bool         `yaml:"pure,omitempty"`
	Static    bool         `yaml:"static,omitempty"`
	Const     bool         `yaml:"const,omitempty"`
	Context   string       `yaml:"context"`             // Class that introduced the method
	Overrides []string     `yaml:"overrides,omitempty"` // Classes declaring the method, in walk order
	Result    *Parameter   `yaml:"result,omitempty"`
	Params    []*Parameter `yaml:"parameters,omitempty"`
	HintSize  int          `yaml:"hintSize,omitempty"`
}

// NewMember creates member from function and override class names
func NewMember(fn *Function, overrides []string) *Member {
	member := &Member{
		Name:      fn.Name,
		Signature: fn.Signature,
		Comment:   fn.Comment,
		Access:    fn.Access,
		Virtual:   fn.IsVirtual,
		Pure:      fn.IsPureVirtual,
		Static:    fn.IsStatic,
		Const:     fn.IsConst,
		Overrides: overrides,
		Result:    fn.Result,
		Params:    fn.Parameters,
	}
	if len(overrides) > 0 {
		member.Context = overrides[0]
	}
	if fn.HaveHint {
		member.HintSize = fn.HintSize
	}
	return member
}
