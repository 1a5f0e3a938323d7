// Package cfg implements the object model of CruiseControl.NET ccnet.config
// files and their XML representation.
package cfg

import (
	"fmt"

	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// Categories of the component types in Types.
const (
	CategoryItem          schema.Category = "item"
	CategoryTrigger       schema.Category = "trigger"
	CategoryTask          schema.Category = "task"
	CategorySourceControl schema.Category = "sourcecontrol"
	CategoryLabeller      schema.Category = "labeller"
	CategoryState         schema.Category = "state"
	CategorySecurity      schema.Category = "security"
	CategoryPermission    schema.Category = "permission"
)

var (
	// Version13 introduced integration queues.
	Version13 = schema.V(1, 3)
	// Version14 introduced source control error handling and the git
	// source control block.
	Version14 = schema.V(1, 4)
	// Version15 introduced project security.
	Version15 = schema.V(1, 5)

	// LatestVersion is the newest supported configuration version.
	// It's used when a document does not declare its version.
	LatestVersion = Version15
)

// legacyNamespace is the prefix of the type names that older versions of the
// configuration editor wrote into ccnetconfigType attributes.
const legacyNamespace = "CCNetConfig.Core."

// LogFn is a printf-style logging function.
type LogFn func(format string, v ...any)

// Types contains all component types that can appear in a ccnet.config
// file. Other packages can register additional types during initialization.
var Types = schema.NewRegistry()

// typeDef describes a component type that is registered in Types.
type typeDef struct {
	category schema.Category
	// class is the name of the .NET class, it's used to generate the
	// legacy type name.
	class       string
	since       schema.Version
	description string
	new         schema.Factory
}

func register(defs ...typeDef) {
	for _, d := range defs {
		Types.MustRegister(schema.Registration{
			Category:    d.category,
			Name:        d.new().TypeName(),
			New:         d.new,
			Since:       d.since,
			Legacy:      []string{legacyName(d.category, d.class)},
			Description: d.description,
		})
	}
}

func legacyName(cat schema.Category, class string) string {
	var ns string

	switch cat {
	case CategoryItem:
		ns = "Components"
	case CategoryTrigger:
		ns = "Components.Triggers"
	case CategoryTask:
		ns = "Components.Tasks"
	case CategorySourceControl:
		ns = "Components.SourceControls"
	case CategoryLabeller:
		ns = "Components.Labellers"
	case CategoryState:
		ns = "Components.States"
	case CategorySecurity, CategoryPermission:
		ns = "Components.Security"
	default:
		panic(fmt.Sprintf("no legacy namespace defined for category %q", cat))
	}

	return legacyNamespace + ns + "." + class
}

// LegacyTypeName returns the .NET type name that older versions of the
// configuration editor wrote into the ccnetconfigType attribute for the
// registered type.
func LegacyTypeName(cat schema.Category, name string) (string, bool) {
	reg, exist := Types.Lookup(cat, name)
	if !exist || len(reg.Legacy) == 0 {
		return "", false
	}

	return reg.Legacy[0], true
}

// Item is an element that can appear directly below the cruisecontrol root
// element.
type Item interface {
	schema.Component
	ItemName() string
}

// Trigger starts a project build.
// Types defined in other packages implement it by embedding TriggerBase.
type Trigger interface {
	schema.Component
	trigger()
}

// TriggerBase is embedded by Trigger implementations.
type TriggerBase struct {
	schema.Preserved
}

func (TriggerBase) trigger() {}

// PublisherTask is a task that can be run as prebuild step, build task or
// publisher.
type PublisherTask interface {
	schema.Component
	task()
}

// TaskBase is embedded by PublisherTask implementations.
type TaskBase struct {
	schema.Preserved
}

func (TaskBase) task() {}

// SourceControl detects modifications and fetches the sources of a project.
type SourceControl interface {
	schema.Component
	sourceControl()
}

// SourceControlBase is embedded by SourceControl implementations.
type SourceControlBase struct {
	schema.Preserved
}

func (SourceControlBase) sourceControl() {}

// Labeller generates build labels.
type Labeller interface {
	schema.Component
	labeller()
}

// LabellerBase is embedded by Labeller implementations.
type LabellerBase struct {
	schema.Preserved
}

func (LabellerBase) labeller() {}

// State stores the integration state of a project.
type State interface {
	schema.Component
	state()
}

// StateBase is embedded by State implementations.
type StateBase struct {
	schema.Preserved
}

func (StateBase) state() {}

// ProjectSecurity defines who can operate a project.
type ProjectSecurity interface {
	schema.Component
	projectSecurity()
}

// SecurityBase is embedded by ProjectSecurity implementations.
type SecurityBase struct {
	schema.Preserved
}

func (SecurityBase) projectSecurity() {}

// Permission grants rights to users or roles.
type Permission interface {
	schema.Component
	permission()
}

// PermissionBase is embedded by Permission implementations.
type PermissionBase struct {
	schema.Preserved
}

func (PermissionBase) permission() {}

var itemTypes = []typeDef{
	{
		category:    CategoryItem,
		class:       "Project",
		description: "a project that is integrated by the build server",
		new:         func() schema.Component { return &Project{} },
	},
	{
		category:    CategoryItem,
		class:       "Queue",
		since:       Version13,
		description: "an integration queue that serializes project builds",
		new:         func() schema.Component { return &Queue{} },
	},
}

func init() {
	register(itemTypes...)
	register(triggerTypes...)
	register(taskTypes...)
	register(sourceControlTypes...)
	register(labellerTypes...)
	register(stateTypes...)
	register(securityTypes...)
	register(permissionTypes...)
}
