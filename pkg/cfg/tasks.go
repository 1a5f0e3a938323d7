package cfg

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

var taskTypes = []typeDef{
	{
		category:    CategoryTask,
		class:       "ExecutableTask",
		description: "runs an executable",
		new:         func() schema.Component { return &ExecTask{} },
	},
	{
		category:    CategoryTask,
		class:       "MsBuildTask",
		description: "builds a project with MSBuild",
		new:         func() schema.Component { return &MSBuildTask{} },
	},
	{
		category:    CategoryTask,
		class:       "NAntTask",
		description: "runs NAnt targets",
		new:         func() schema.Component { return &NAntTask{} },
	},
	{
		category:    CategoryTask,
		class:       "EmailPublisher",
		description: "sends build results via email",
		new:         func() schema.Component { return &EmailPublisher{} },
	},
	{
		category:    CategoryTask,
		class:       "XmlLogPublisher",
		description: "writes the build log that the dashboard shows",
		new:         func() schema.Component { return &XMLLogPublisher{} },
	},
	{
		category:    CategoryTask,
		class:       "StatisticsPublisher",
		description: "collects build statistics",
		new:         func() schema.Component { return &StatisticsPublisher{} },
	},
	{
		category:    CategoryTask,
		class:       "ArtifactCleanupPublisher",
		description: "removes old build logs",
		new:         func() schema.Component { return &ArtifactCleanupPublisher{} },
	},
	{
		category:    CategoryTask,
		class:       "BuildPublisher",
		description: "copies build output to a publish directory",
		new:         func() schema.Component { return &BuildPublisher{} },
	},
	{
		category:    CategoryTask,
		class:       "MergeFilesTask",
		description: "merges result files into the build log",
		new:         func() schema.Component { return &MergeFilesTask{} },
	},
	{
		category:    CategoryTask,
		class:       "ModificationHistoryPublisher",
		description: "records the modifications of every build",
		new:         func() schema.Component { return &ModificationHistoryPublisher{} },
	},
	{
		category:    CategoryTask,
		class:       "NullTask",
		description: "does nothing, optionally fails",
		new:         func() schema.Component { return &NullTask{} },
	},
	{
		category:    CategoryTask,
		class:       "ForceBuildPublisher",
		description: "forces a build of another project",
		new:         func() schema.Component { return &ForceBuildPublisher{} },
	},
}

// EnvironmentVariable is passed to the process started by a task.
type EnvironmentVariable struct {
	Name  string
	Value string
}

func (v *EnvironmentVariable) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&v.Name), schema.Required()),
		schema.Attr("value", schema.String(&v.Value)),
	}
}

// ExecTask runs Executable.
type ExecTask struct {
	TaskBase

	Description      string
	Executable       string
	BaseDirectory    string
	BuildArgs        string
	Environment      []*EnvironmentVariable
	SuccessExitCodes string
	TimeoutSeconds   *int
}

func (*ExecTask) TypeName() string { return "exec" }

func (t *ExecTask) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("description", schema.String(&t.Description)),
		schema.Elem("executable", schema.String(&t.Executable), schema.Required(),
			schema.Description("path of the executable")),
		schema.Elem("baseDirectory", schema.String(&t.BaseDirectory),
			schema.Description("working directory, relative to the project working directory")),
		schema.Elem("buildArgs", schema.String(&t.BuildArgs)),
		schema.Objects("environment", "variable", &t.Environment),
		schema.Elem("successExitCodes", schema.String(&t.SuccessExitCodes),
			schema.Default("0"),
			schema.Description("comma separated list of exit codes that indicate success")),
		schema.Elem("buildTimeoutSeconds", schema.Int(&t.TimeoutSeconds), schema.Default("600")),
	}
}

func (t *ExecTask) Validate() error {
	if t.SuccessExitCodes == "" {
		return nil
	}

	for code := range strings.SplitSeq(t.SuccessExitCodes, ",") {
		if _, err := strconv.Atoi(strings.TrimSpace(code)); err != nil {
			return schema.WrapPath(fmt.Errorf("%q is not an exit code", code), "successExitCodes")
		}
	}

	return nil
}

// MSBuildTask builds ProjectFile with MSBuild.
type MSBuildTask struct {
	TaskBase

	Executable       string
	WorkingDirectory string
	ProjectFile      string
	BuildArgs        string
	Targets          string
	Logger           string
	TimeoutSeconds   *int
}

func (*MSBuildTask) TypeName() string { return "msbuild" }

func (t *MSBuildTask) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("executable", schema.String(&t.Executable),
			schema.Default(`C:\WINDOWS\Microsoft.NET\Framework\v2.0.50727\MSBuild.exe`)),
		schema.Elem("workingDirectory", schema.String(&t.WorkingDirectory)),
		schema.Elem("projectFile", schema.String(&t.ProjectFile)),
		schema.Elem("buildArgs", schema.String(&t.BuildArgs)),
		schema.Elem("targets", schema.String(&t.Targets),
			schema.Description("semicolon separated list of targets")),
		schema.Elem("logger", schema.String(&t.Logger)),
		schema.Elem("timeout", schema.Int(&t.TimeoutSeconds), schema.Default("600")),
	}
}

// NAntTask runs the Targets of BuildFile.
type NAntTask struct {
	TaskBase

	Executable     string
	BaseDirectory  string
	BuildFile      string
	BuildArgs      string
	NoLogo         *bool
	Targets        []string
	TimeoutSeconds *int
}

func (*NAntTask) TypeName() string { return "nant" }

func (t *NAntTask) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("executable", schema.String(&t.Executable), schema.Default("nant")),
		schema.Elem("baseDirectory", schema.String(&t.BaseDirectory)),
		schema.Elem("buildFile", schema.String(&t.BuildFile)),
		schema.Elem("buildArgs", schema.String(&t.BuildArgs)),
		schema.Elem("nologo", schema.Bool(&t.NoLogo), schema.Default("true")),
		schema.Array("targetList", "target", &t.Targets),
		schema.Elem("buildTimeoutSeconds", schema.Int(&t.TimeoutSeconds), schema.Default("600")),
	}
}

// NotificationType defines which builds an email group is notified about.
type NotificationType string

const (
	NotificationAlways    NotificationType = "Always"
	NotificationChange    NotificationType = "Change"
	NotificationFailed    NotificationType = "Failed"
	NotificationSuccess   NotificationType = "Success"
	NotificationFixed     NotificationType = "Fixed"
	NotificationException NotificationType = "Exception"
)

// EmailUser is a recipient of build notifications.
type EmailUser struct {
	Name    string
	Group   string
	Address string
}

func (u *EmailUser) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&u.Name), schema.Required()),
		schema.Attr("group", schema.String(&u.Group)),
		schema.Attr("address", schema.String(&u.Address), schema.Required()),
	}
}

// EmailGroup defines when its members are notified.
type EmailGroup struct {
	schema.Preserved

	Name         string
	Notification NotificationType
}

func (g *EmailGroup) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&g.Name), schema.Required()),
		schema.Attr("notification", schema.Enum(&g.Notification,
			NotificationAlways,
			NotificationChange,
			NotificationFailed,
			NotificationSuccess,
			NotificationFixed,
			NotificationException,
		), schema.Required()),
	}
}

// EmailPublisher sends build results to Users.
type EmailPublisher struct {
	TaskBase

	From             string
	MailHost         string
	MailPort         *int
	MailHostUsername string
	MailHostPassword string
	IncludeDetails   *bool
	UseSSL           *bool
	Users            []*EmailUser
	Groups           []*EmailGroup
}

func (*EmailPublisher) TypeName() string { return "email" }

func (p *EmailPublisher) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("from", schema.String(&p.From), schema.Required(),
			schema.Group("Mail server"),
			schema.Description("sender address")),
		schema.Attr("mailhost", schema.String(&p.MailHost), schema.Required(),
			schema.Group("Mail server")),
		schema.Attr("mailport", schema.Int(&p.MailPort),
			schema.Group("Mail server"),
			schema.Default("25")),
		schema.Attr("mailhostUsername", schema.String(&p.MailHostUsername),
			schema.Group("Mail server")),
		schema.Attr("mailhostPassword", schema.String(&p.MailHostPassword),
			schema.Group("Mail server")),
		schema.Attr("includeDetails", schema.Bool(&p.IncludeDetails), schema.Default("false")),
		schema.Attr("useSSL", schema.Bool(&p.UseSSL), schema.Default("false")),
		schema.Objects("users", "user", &p.Users, schema.Group("Recipients")),
		schema.Objects("groups", "group", &p.Groups, schema.Group("Recipients")),
	}
}

// Validate ensures that users only reference declared groups.
func (p *EmailPublisher) Validate() error {
	groups := make(map[string]struct{}, len(p.Groups))
	for _, g := range p.Groups {
		groups[g.Name] = struct{}{}
	}

	var errs []error
	for i, u := range p.Users {
		if u.Group == "" {
			continue
		}

		if _, exist := groups[u.Group]; !exist {
			errs = append(errs, schema.WrapPath(
				fmt.Errorf("group %q is not defined", u.Group),
				"users", fmt.Sprintf("user[%d]", i), "group",
			))
		}
	}

	return errors.Join(errs...)
}

// XMLLogPublisher writes the build log.
type XMLLogPublisher struct {
	TaskBase

	LogDir string
}

func (*XMLLogPublisher) TypeName() string { return "xmllogger" }

func (p *XMLLogPublisher) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("logDir", schema.String(&p.LogDir),
			schema.Description("directory of the build logs, defaults to the artifact directory")),
	}
}

// StatisticsPublisher collects statistics about the builds of a project.
type StatisticsPublisher struct {
	TaskBase
}

func (*StatisticsPublisher) TypeName() string { return "statistics" }

func (*StatisticsPublisher) Fields() []schema.Field { return nil }

// CleanUpMethod defines how ArtifactCleanupPublisher selects the logs to
// remove.
type CleanUpMethod string

const (
	CleanUpKeepLastXBuilds            CleanUpMethod = "KeepLastXBuilds"
	CleanUpDeleteBuildsOlderThanXDays CleanUpMethod = "DeleteBuildsOlderThanXDays"
)

// ArtifactCleanupPublisher removes old build logs.
type ArtifactCleanupPublisher struct {
	TaskBase

	CleanUpMethod CleanUpMethod
	CleanUpValue  *int
}

func (*ArtifactCleanupPublisher) TypeName() string { return "artifactcleanup" }

func (p *ArtifactCleanupPublisher) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("cleanUpMethod", schema.Enum(&p.CleanUpMethod,
			CleanUpKeepLastXBuilds,
			CleanUpDeleteBuildsOlderThanXDays,
		), schema.Required()),
		schema.Attr("cleanUpValue", schema.Int(&p.CleanUpValue), schema.Required()),
	}
}

func (p *ArtifactCleanupPublisher) Validate() error {
	if p.CleanUpValue != nil && *p.CleanUpValue < 1 {
		return schema.WrapPath(fmt.Errorf("must be greater than 0, is %d", *p.CleanUpValue), "cleanUpValue")
	}

	return nil
}

// BuildPublisher copies the content of SourceDir to PublishDir.
type BuildPublisher struct {
	TaskBase

	SourceDir       string
	PublishDir      string
	UseLabelSubDir  *bool
	AlwaysPublish   *bool
	CleanPublishDir *bool
}

func (*BuildPublisher) TypeName() string { return "buildpublisher" }

func (p *BuildPublisher) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("sourceDir", schema.String(&p.SourceDir)),
		schema.Elem("publishDir", schema.String(&p.PublishDir)),
		schema.Elem("useLabelSubDirectory", schema.Bool(&p.UseLabelSubDir), schema.Default("true")),
		schema.Elem("alwaysPublish", schema.Bool(&p.AlwaysPublish), schema.Default("false")),
		schema.Elem("cleanPublishDirPriorToCopy", schema.Bool(&p.CleanPublishDir), schema.Default("false")),
	}
}

// MergeFilesTask merges Files into the build log.
type MergeFilesTask struct {
	TaskBase

	Files []string
}

func (*MergeFilesTask) TypeName() string { return "merge" }

func (t *MergeFilesTask) Fields() []schema.Field {
	return []schema.Field{
		schema.Array("files", "file", &t.Files, schema.Required(),
			schema.Description("files or glob patterns to merge")),
	}
}

// ModificationHistoryPublisher records the modifications of builds.
type ModificationHistoryPublisher struct {
	TaskBase

	OnlyLogWhenChangesFound *bool
}

func (*ModificationHistoryPublisher) TypeName() string { return "modificationHistory" }

func (p *ModificationHistoryPublisher) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("onlyLogWhenChangesFound", schema.Bool(&p.OnlyLogWhenChangesFound),
			schema.Default("false")),
	}
}

// NullTask does nothing. It fails the build if SimulateFailure is true.
type NullTask struct {
	TaskBase

	SimulateFailure *bool
}

func (*NullTask) TypeName() string { return "nullTask" }

func (t *NullTask) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("simulateFailure", schema.Bool(&t.SimulateFailure), schema.Default("false")),
	}
}

// ForceBuildPublisher forces a build of Project.
type ForceBuildPublisher struct {
	TaskBase

	Project           string
	ServerURI         *url.URL
	IntegrationStatus IntegrationStatus
	EnforcerName      string
}

func (*ForceBuildPublisher) TypeName() string { return "forcebuild" }

func (p *ForceBuildPublisher) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("project", schema.String(&p.Project), schema.Required()),
		schema.Elem("serverUri", schema.URL(&p.ServerURI)),
		schema.Elem("integrationStatus", schema.Enum(&p.IntegrationStatus,
			IntegrationStatusSuccess,
			IntegrationStatusFailure,
			IntegrationStatusException,
			IntegrationStatusUnknown,
		), schema.Default(string(IntegrationStatusSuccess))),
		schema.Elem("enforcerName", schema.String(&p.EnforcerName)),
	}
}
