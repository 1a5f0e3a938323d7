package cfg

import (
	"errors"
	"fmt"
	"slices"

	"github.com/beevik/etree"

	"github.com/simplesurance/ccnetcfg/internal/set"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// RootElement is the name of the root element of ccnet.config files.
const RootElement = "cruisecontrol"

// CruiseControl is a ccnet.config document.
type CruiseControl struct {
	// Version is the configuration version of the document. It defines
	// which fields and component types are read and written.
	Version  schema.Version
	Projects []*Project
	// Queues contains the declared queues and the implicit queues that
	// were created by Link.
	Queues []*Queue
	// Preprocessor contains the elements of the CCNet preprocessor
	// (cb:define, cb:include, ...) that are direct children of the root
	// element. They are written back unchanged, before all other items.
	Preprocessor []*etree.Element
	// Namespaces are the namespace declarations of the root element.
	Namespaces []etree.Attr
}

// New returns an empty document with the given configuration version.
func New(version schema.Version) *CruiseControl {
	return &CruiseControl{Version: version}
}

func itemPath(typeName, name string) string {
	if name == "" {
		return typeName
	}

	return fmt.Sprintf("%s[%s]", typeName, name)
}

func (c *CruiseControl) encoder() *schema.Encoder {
	return &schema.Encoder{Version: c.Version, Registry: Types}
}

// Serialize returns the cruisecontrol root element of the document.
// Queues are only written for configuration versions that support them
// and only if they are declared or carry configuration.
func (c *CruiseControl) Serialize() (*etree.Element, error) {
	return c.serialize(c.encoder())
}

func (c *CruiseControl) serialize(enc *schema.Encoder) (*etree.Element, error) {
	root := etree.NewElement(RootElement)

	for _, ns := range c.Namespaces {
		root.CreateAttr(ns.FullKey(), ns.Value)
	}

	for _, el := range c.Preprocessor {
		root.AddChild(el.Copy())
	}

	if c.Version.AtLeast(Version13) {
		for _, q := range c.Queues {
			if !q.hasConfig() {
				continue
			}

			el, err := enc.EncodeComponent(q)
			if err != nil {
				return nil, schema.WrapPath(err, itemPath(q.TypeName(), q.Name))
			}

			root.AddChild(el)
		}
	}

	for _, p := range c.Projects {
		el, err := enc.EncodeComponent(p)
		if err != nil {
			return nil, schema.WrapPath(err, itemPath(p.TypeName(), p.Name))
		}

		root.AddChild(el)
	}

	return root, nil
}

// Deserialize creates a document from a cruisecontrol root element.
// Elements with a namespace prefix are stored in Preprocessor, all other
// children are resolved as items in Types.
func Deserialize(version schema.Version, root *etree.Element, opts ...LoadOpt) (*CruiseControl, error) {
	o := newLoadOpts(opts)

	if root.Tag != RootElement || root.Space != "" {
		return nil, &schema.TypeMismatchError{Element: root.FullTag(), Type: RootElement}
	}

	c := New(version)
	dec := schema.Decoder{Version: version, Registry: o.registry, Strict: o.strict, Logf: o.logf}
	projects := set.Set[string]{}
	queues := set.Set[string]{}

	for _, a := range root.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			c.Namespaces = append(c.Namespaces, etree.Attr{Space: a.Space, Key: a.Key, Value: a.Value})
		}
	}

	for _, child := range root.ChildElements() {
		if child.Space != "" {
			o.logf("keeping preprocessor element %q\n", child.FullTag())
			c.Preprocessor = append(c.Preprocessor, child.Copy())
			continue
		}

		path := itemPath(child.Tag, child.SelectAttrValue("name", ""))

		comp, err := dec.Resolve(CategoryItem, child)
		if err != nil {
			var unknownErr *schema.UnknownTypeError
			if errors.As(err, &unknownErr) && schema.Path(err) == nil {
				return nil, &UnrecognizedItemError{Element: child.Tag, Err: err}
			}

			var versionErr *schema.VersionError
			if !o.strict && errors.As(err, &versionErr) && schema.Path(err) == nil {
				o.logf("ignoring %s, %s\n", path, versionErr)
				continue
			}

			return nil, schema.WrapPath(err, path)
		}

		switch item := comp.(type) {
		case *Project:
			if !projects.AddIfMissing(item.Name) {
				return nil, &DuplicateNameError{Type: item.TypeName(), Name: item.Name}
			}

			c.Projects = append(c.Projects, item)

		case *Queue:
			if !queues.AddIfMissing(item.Name) {
				return nil, &DuplicateNameError{Type: item.TypeName(), Name: item.Name}
			}

			c.Queues = append(c.Queues, item)

		default:
			return nil, &UnrecognizedItemError{
				Element: child.Tag,
				Err:     fmt.Errorf("%T is not a project or queue", comp),
			}
		}
	}

	c.Link()

	return c, nil
}

// Link assigns the projects to their queues.
// Queues that are referenced by projects but do not exist are created as
// implicit queues, implicit queues that are not referenced anymore and carry
// no configuration are removed.
func (c *CruiseControl) Link() {
	for _, q := range c.Queues {
		q.projects = nil
	}

	for _, p := range c.Projects {
		if p.Queue == "" {
			continue
		}

		q := c.Queue(p.Queue)
		if q == nil {
			q = &Queue{Name: p.Queue, implicit: true}
			c.Queues = append(c.Queues, q)
		}

		q.projects = append(q.projects, p)
	}

	c.Queues = slices.DeleteFunc(c.Queues, func(q *Queue) bool {
		return q.implicit && len(q.projects) == 0 && !q.hasConfig()
	})
}

// Project returns the project with the given name, nil if it does not exist.
func (c *CruiseControl) Project(name string) *Project {
	for _, p := range c.Projects {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Queue returns the queue with the given name, nil if it does not exist.
func (c *CruiseControl) Queue(name string) *Queue {
	for _, q := range c.Queues {
		if q.Name == name {
			return q
		}
	}

	return nil
}

// AddProject appends p to the document and links it to its queue.
func (c *CruiseControl) AddProject(p *Project) error {
	if c.Project(p.Name) != nil {
		return &DuplicateNameError{Type: p.TypeName(), Name: p.Name}
	}

	c.Projects = append(c.Projects, p)
	c.Link()

	return nil
}

// RemoveProject removes the project with the given name. It returns false
// if the project does not exist.
func (c *CruiseControl) RemoveProject(name string) bool {
	idx := slices.IndexFunc(c.Projects, func(p *Project) bool { return p.Name == name })
	if idx == -1 {
		return false
	}

	c.Projects = slices.Delete(c.Projects, idx, idx+1)
	c.Link()

	return true
}

// AddQueue declares the queue q. If an implicit queue with the same name
// exists, it is replaced.
func (c *CruiseControl) AddQueue(q *Queue) error {
	idx := slices.IndexFunc(c.Queues, func(e *Queue) bool { return e.Name == q.Name })
	if idx != -1 {
		if !c.Queues[idx].implicit {
			return &DuplicateNameError{Type: q.TypeName(), Name: q.Name}
		}

		c.Queues[idx] = q
	} else {
		c.Queues = append(c.Queues, q)
	}

	q.implicit = false
	c.Link()

	return nil
}

// Validate validates the document and returns all found violations as
// schema.Violations.
func (c *CruiseControl) Validate() error {
	var violations schema.Violations

	// add wraps every violation in err with path
	add := func(err error, path ...string) {
		var v schema.Violations
		if errors.As(err, &v) {
			for _, e := range v {
				violations = append(violations, schema.WrapPath(e, path...))
			}
			return
		}

		violations = append(violations, schema.WrapPath(err, path...))
	}

	projects := set.Set[string]{}
	for _, p := range c.Projects {
		path := itemPath(p.TypeName(), p.Name)

		if !projects.AddIfMissing(p.Name) {
			add(&DuplicateNameError{Type: p.TypeName(), Name: p.Name})
		}

		if err := schema.Validate(Types, c.Version, "", p); err != nil {
			add(err, path)
		}
	}

	if c.Version.AtLeast(Version13) {
		queues := set.Set[string]{}
		for _, q := range c.Queues {
			queues.Add(q.Name)
		}

		declared := set.Set[string]{}
		for _, q := range c.Queues {
			if !q.hasConfig() {
				continue
			}

			path := itemPath(q.TypeName(), q.Name)

			if !declared.AddIfMissing(q.Name) {
				add(&DuplicateNameError{Type: q.TypeName(), Name: q.Name})
			}

			if err := schema.Validate(Types, c.Version, "", q); err != nil {
				add(err, path)
			}

			for _, lq := range q.LockQueues {
				if !queues.Contains(lq) {
					add(fmt.Errorf("locked queue %q does not exist", lq), path, "lockqueues")
				}
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}

	return violations
}

// Clone returns a deep copy of the document.
func (c *CruiseControl) Clone() (*CruiseControl, error) {
	res := New(c.Version)

	for _, p := range c.Projects {
		var cp Project
		if err := schema.Clone(Types, p, &cp); err != nil {
			return nil, schema.WrapPath(err, itemPath(p.TypeName(), p.Name))
		}

		res.Projects = append(res.Projects, &cp)
	}

	for _, q := range c.Queues {
		cq := Queue{implicit: q.implicit}
		if err := schema.Clone(Types, q, &cq); err != nil {
			return nil, schema.WrapPath(err, itemPath(q.TypeName(), q.Name))
		}

		res.Queues = append(res.Queues, &cq)
	}

	for _, el := range c.Preprocessor {
		res.Preprocessor = append(res.Preprocessor, el.Copy())
	}

	for _, ns := range c.Namespaces {
		res.Namespaces = append(res.Namespaces, etree.Attr{Space: ns.Space, Key: ns.Key, Value: ns.Value})
	}

	res.Link()

	return res, nil
}

// EncodeComponent returns the XML element of a component for configuration
// version v.
func EncodeComponent(v schema.Version, comp schema.Component) (*etree.Element, error) {
	enc := schema.Encoder{Version: v, Registry: Types}
	return enc.EncodeComponent(comp)
}

// DecodeComponent populates comp from its XML element for configuration
// version v.
func DecodeComponent(v schema.Version, el *etree.Element, comp schema.Component) error {
	dec := schema.Decoder{Version: v, Registry: Types}
	return dec.DecodeComponent(el, comp)
}
