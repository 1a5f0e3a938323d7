package cfg

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/simplesurance/ccnetcfg/internal/validation"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// SourceControlErrorHandling defines when source control errors fail
// a project.
type SourceControlErrorHandling string

const (
	ReportEveryFailure       SourceControlErrorHandling = "ReportEveryFailure"
	ReportOnRetryAmount      SourceControlErrorHandling = "ReportOnRetryAmount"
	ReportOnEveryRetryAmount SourceControlErrorHandling = "ReportOnEveryRetryAmount"
)

// ProjectState is the state of a project after the server started.
type ProjectState string

const (
	ProjectStateStarted ProjectState = "Started"
	ProjectStateStopped ProjectState = "Stopped"
)

// StartupMode defines how the state of a project is restored when the
// server starts.
type StartupMode string

const (
	StartupModeUseLastState    StartupMode = "UseLastState"
	StartupModeUseInitialState StartupMode = "UseInitialState"
)

const (
	groupGeneral       = "General"
	groupQueue         = "Queue"
	groupSourceControl = "Source control"
	groupBuild         = "Build"
)

// ExternalLink is a link that is shown on the project page of the dashboard.
type ExternalLink struct {
	schema.Preserved

	Name string
	URL  *url.URL
}

func (l *ExternalLink) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&l.Name), schema.Required()),
		schema.Attr("url", schema.URL(&l.URL), schema.Required()),
	}
}

// Project is a project that is integrated by the build server.
type Project struct {
	schema.Preserved

	Name                       string
	Queue                      string
	QueuePriority              *int
	Category                   string
	Description                string
	WorkingDirectory           string
	ArtifactDirectory          string
	WebURL                     *url.URL
	ModificationDelaySeconds   *int
	PublishExceptions          *bool
	MaxSourceControlRetries    *int
	StopOnMaxRetries           *bool
	SourceControlErrorHandling SourceControlErrorHandling
	InitialState               ProjectState
	StartupMode                StartupMode

	Triggers      []Trigger
	SourceControl SourceControl
	Labeller      Labeller
	State         State
	PreBuild      []PublisherTask
	Tasks         []PublisherTask
	Publishers    []PublisherTask
	ExternalLinks []*ExternalLink
	Security      ProjectSecurity
}

func (*Project) TypeName() string { return "project" }

// ItemName returns the name of the project.
func (p *Project) ItemName() string { return p.Name }

func (p *Project) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&p.Name), schema.Required(),
			schema.Group(groupGeneral),
			schema.Description("unique name of the project")),
		schema.Attr("queue", schema.String(&p.Queue), schema.Since(1, 3),
			schema.Group(groupQueue),
			schema.Description("integration queue of the project, defaults to a queue named like the project")),
		schema.Attr("queuePriority", schema.Int(&p.QueuePriority), schema.Since(1, 3),
			schema.Group(groupQueue),
			schema.Default("0"),
			schema.Description("position in the queue, lower values are integrated first, 0 is last")),
		schema.Elem("category", schema.String(&p.Category), schema.Group(groupGeneral)),
		schema.Elem("description", schema.String(&p.Description), schema.Since(1, 4),
			schema.Group(groupGeneral)),
		schema.Elem("workingDirectory", schema.String(&p.WorkingDirectory), schema.Group(groupBuild)),
		schema.Elem("artifactDirectory", schema.String(&p.ArtifactDirectory), schema.Group(groupBuild)),
		schema.Elem("webURL", schema.URL(&p.WebURL), schema.Group(groupGeneral),
			schema.Description("URL of the project page in the dashboard")),
		schema.Elem("modificationDelaySeconds", schema.Int(&p.ModificationDelaySeconds),
			schema.Group(groupSourceControl),
			schema.Default("0"),
			schema.Description("minimum age of the last modification before a build starts")),
		schema.Elem("publishExceptions", schema.Bool(&p.PublishExceptions),
			schema.Group(groupBuild),
			schema.Default("true")),
		schema.Elem("maxSourceControlRetries", schema.Int(&p.MaxSourceControlRetries), schema.Since(1, 4),
			schema.Group(groupSourceControl),
			schema.Default("5")),
		schema.Elem("stopProjectOnReachingMaxSourceControlRetries", schema.Bool(&p.StopOnMaxRetries),
			schema.Since(1, 4),
			schema.Group(groupSourceControl),
			schema.Default("false")),
		schema.Elem("sourceControlErrorHandling", schema.Enum(&p.SourceControlErrorHandling,
			ReportEveryFailure,
			ReportOnRetryAmount,
			ReportOnEveryRetryAmount,
		), schema.Since(1, 4),
			schema.Group(groupSourceControl),
			schema.Default(string(ReportEveryFailure))),
		schema.Elem("initialState", schema.Enum(&p.InitialState, ProjectStateStarted, ProjectStateStopped),
			schema.Since(1, 4),
			schema.Group(groupGeneral),
			schema.Default(string(ProjectStateStarted))),
		schema.Elem("startupMode", schema.Enum(&p.StartupMode, StartupModeUseLastState, StartupModeUseInitialState),
			schema.Since(1, 4),
			schema.Group(groupGeneral),
			schema.Default(string(StartupModeUseLastState))),
		schema.Variants("triggers", CategoryTrigger, &p.Triggers, schema.Group(groupBuild)),
		schema.Variant("sourcecontrol", CategorySourceControl, &p.SourceControl,
			schema.Alias("sourceControl"),
			schema.Group(groupSourceControl)),
		schema.Variant("labeller", CategoryLabeller, &p.Labeller, schema.Group(groupBuild)),
		schema.Variant("state", CategoryState, &p.State, schema.Group(groupGeneral)),
		schema.Variants("prebuild", CategoryTask, &p.PreBuild,
			schema.Alias("preBuild"),
			schema.Group(groupBuild),
			schema.Description("tasks that run before the source code is fetched")),
		schema.Variants("tasks", CategoryTask, &p.Tasks, schema.Group(groupBuild)),
		schema.Variants("publishers", CategoryTask, &p.Publishers, schema.Group(groupBuild),
			schema.Description("tasks that run after the build, also when it failed")),
		schema.Objects("externalLinks", "externalLink", &p.ExternalLinks, schema.Group(groupGeneral)),
		schema.Variant("security", CategorySecurity, &p.Security, schema.Since(1, 5),
			schema.Group(groupGeneral)),
	}
}

// QueueName returns the name of the integration queue of the project.
// Projects without an explicit queue are integrated in a queue named like
// the project.
func (p *Project) QueueName() string {
	if p.Queue != "" {
		return p.Queue
	}

	return p.Name
}

// Validate validates the project properties that can not be described by
// its fields.
func (p *Project) Validate() error {
	var errs []error

	if p.Name != "" {
		if err := validation.StrID(p.Name); err != nil {
			errs = append(errs, schema.WrapPath(err, "name"))
		}
	}

	if p.QueuePriority != nil && *p.QueuePriority < 0 {
		errs = append(errs, schema.WrapPath(
			fmt.Errorf("must not be negative, is %d", *p.QueuePriority),
			"queuePriority",
		))
	}

	if p.MaxSourceControlRetries != nil && *p.MaxSourceControlRetries < 0 {
		errs = append(errs, schema.WrapPath(
			fmt.Errorf("must not be negative, is %d", *p.MaxSourceControlRetries),
			"maxSourceControlRetries",
		))
	}

	return errors.Join(errs...)
}
