package cfg

import (
	"fmt"
	"slices"
	"strings"

	"github.com/simplesurance/ccnetcfg/internal/validation"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// DuplicateHandling defines how a queue handles integration requests for
// projects that are already queued.
type DuplicateHandling string

const (
	DuplicatesUseFirst                DuplicateHandling = "UseFirst"
	DuplicatesApplyForceBuildsReAdd   DuplicateHandling = "ApplyForceBuildsReAdd"
	DuplicatesApplyForceBuildsReplace DuplicateHandling = "ApplyForceBuildsReplace"
)

// Queue is an integration queue. Projects in the same queue are integrated
// one after the other.
type Queue struct {
	schema.Preserved

	Name       string
	Duplicates DuplicateHandling
	// LockQueues are the names of queues that are locked while a project of
	// this queue is integrated.
	LockQueues []string

	// implicit is true for queues that are referenced by projects but are
	// not declared in the document.
	implicit bool
	projects []*Project
}

func (*Queue) TypeName() string { return "queue" }

// ItemName returns the name of the queue.
func (q *Queue) ItemName() string { return q.Name }

func (q *Queue) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&q.Name), schema.Required()),
		schema.Attr("duplicates", schema.Enum(&q.Duplicates,
			DuplicatesUseFirst,
			DuplicatesApplyForceBuildsReAdd,
			DuplicatesApplyForceBuildsReplace,
		), schema.Default(string(DuplicatesUseFirst))),
		schema.Attr("lockqueues", lockQueuesValue{p: &q.LockQueues},
			schema.Description("comma separated names of queues that are locked during integrations")),
	}
}

// Implicit returns true if the queue was created because a project
// referenced it, without being declared in the document.
func (q *Queue) Implicit() bool {
	return q.implicit
}

// Projects returns the projects that are integrated in the queue, ordered
// by their position in the document.
// The list is updated by CruiseControl.Link.
func (q *Queue) Projects() []*Project {
	return slices.Clone(q.projects)
}

// hasConfig returns true if the queue is written to the document.
func (q *Queue) hasConfig() bool {
	return !q.implicit || q.Duplicates != "" || len(q.LockQueues) > 0
}

func (q *Queue) Validate() error {
	if q.Name != "" {
		if err := validation.StrID(q.Name); err != nil {
			return schema.WrapPath(err, "name")
		}
	}

	if slices.Contains(q.LockQueues, q.Name) {
		return schema.WrapPath(fmt.Errorf("queue %q can not lock itself", q.Name), "lockqueues")
	}

	return nil
}

// lockQueuesValue maps a list of queue names to a comma separated
// attribute.
type lockQueuesValue struct {
	p *[]string
}

func (v lockQueuesValue) IsSet() bool    { return len(*v.p) > 0 }
func (v lockQueuesValue) String() string { return strings.Join(*v.p, ",") }

func (v lockQueuesValue) Set(s string) error {
	var res []string

	for name := range strings.SplitSeq(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			res = append(res, name)
		}
	}

	*v.p = res

	return nil
}
