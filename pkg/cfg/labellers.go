package cfg

import (
	"fmt"
	"net/url"
	"time"

	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

var labellerTypes = []typeDef{
	{
		category:    CategoryLabeller,
		class:       "DefaultLabeller",
		description: "increments a build number",
		new:         func() schema.Component { return &DefaultLabeller{} },
	},
	{
		category:    CategoryLabeller,
		class:       "DateLabeller",
		description: "generates labels from the build date",
		new:         func() schema.Component { return &DateLabeller{} },
	},
	{
		category:    CategoryLabeller,
		class:       "IterationLabeller",
		description: "generates labels from release iterations",
		new:         func() schema.Component { return &IterationLabeller{} },
	},
	{
		category:    CategoryLabeller,
		class:       "RemoteProjectLabeller",
		description: "uses the label of another project",
		new:         func() schema.Component { return &RemoteProjectLabeller{} },
	},
	{
		category:    CategoryLabeller,
		class:       "AssemblyVersionLabeller",
		since:       Version14,
		description: "generates .NET assembly versions",
		new:         func() schema.Component { return &AssemblyVersionLabeller{} },
	},
}

// DefaultLabeller labels builds with Prefix followed by an increasing
// number.
type DefaultLabeller struct {
	LabellerBase

	Prefix             string
	IncrementOnFailure *bool
	LabelFormat        string
	InitialBuildLabel  *int
}

func (*DefaultLabeller) TypeName() string { return "defaultlabeller" }

func (l *DefaultLabeller) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("prefix", schema.String(&l.Prefix)),
		schema.Elem("incrementOnFailure", schema.Bool(&l.IncrementOnFailure), schema.Default("false")),
		schema.Elem("labelFormat", schema.String(&l.LabelFormat), schema.Default("0"),
			schema.Description(".NET format string for the build number")),
		schema.Elem("initialBuildLabel", schema.Int(&l.InitialBuildLabel), schema.Default("1")),
	}
}

// DateLabeller labels builds with the date of the build.
type DateLabeller struct {
	LabellerBase

	YearFormat     string
	MonthFormat    string
	DayFormat      string
	RevisionFormat string
}

func (*DateLabeller) TypeName() string { return "dateLabeller" }

func (l *DateLabeller) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("yearFormat", schema.String(&l.YearFormat), schema.Default("0000")),
		schema.Elem("monthFormat", schema.String(&l.MonthFormat), schema.Default("00")),
		schema.Elem("dayFormat", schema.String(&l.DayFormat), schema.Default("00")),
		schema.Elem("revisionFormat", schema.String(&l.RevisionFormat), schema.Default("000")),
	}
}

const releaseStartDateLayout = "2006/01/02"

// IterationLabeller labels builds with the number of the iteration since
// ReleaseStartDate.
type IterationLabeller struct {
	LabellerBase

	Prefix           string
	DurationWeeks    *int
	ReleaseStartDate string
	Separator        string
}

func (*IterationLabeller) TypeName() string { return "iterationlabeller" }

func (l *IterationLabeller) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("prefix", schema.String(&l.Prefix)),
		schema.Elem("duration", schema.Int(&l.DurationWeeks), schema.Default("2"),
			schema.Description("duration of an iteration in weeks")),
		schema.Elem("releaseStartDate", schema.String(&l.ReleaseStartDate), schema.Required(),
			schema.Description("start of the release in the format YYYY/MM/DD")),
		schema.Elem("separator", schema.String(&l.Separator), schema.Default(".")),
	}
}

func (l *IterationLabeller) Validate() error {
	if l.ReleaseStartDate == "" {
		return nil
	}

	if _, err := time.Parse(releaseStartDateLayout, l.ReleaseStartDate); err != nil {
		return schema.WrapPath(
			fmt.Errorf("%q is not a date in the format YYYY/MM/DD", l.ReleaseStartDate),
			"releaseStartDate",
		)
	}

	return nil
}

// RemoteProjectLabeller uses the last label of Project.
type RemoteProjectLabeller struct {
	LabellerBase

	ServerURI *url.URL
	Project   string
}

func (*RemoteProjectLabeller) TypeName() string { return "remoteProjectLabeller" }

func (l *RemoteProjectLabeller) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("serverUri", schema.URL(&l.ServerURI),
			schema.Default("tcp://localhost:21234/CruiseManager.rem")),
		schema.Elem("project", schema.String(&l.Project), schema.Required()),
	}
}

// AssemblyVersionLabeller labels builds with Major.Minor.Build.Revision.
type AssemblyVersionLabeller struct {
	LabellerBase

	Major              *int
	Minor              *int
	Build              *int
	Revision           *int
	IncrementOnFailure *bool
}

func (*AssemblyVersionLabeller) TypeName() string { return "assemblyVersionLabeller" }

func (l *AssemblyVersionLabeller) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("major", schema.Int(&l.Major), schema.Default("0")),
		schema.Elem("minor", schema.Int(&l.Minor), schema.Default("0")),
		schema.Elem("build", schema.Int(&l.Build),
			schema.Description("build number, incremented automatically if unset")),
		schema.Elem("revision", schema.Int(&l.Revision),
			schema.Description("revision, set to the source control revision if unset")),
		schema.Elem("incrementOnFailure", schema.Bool(&l.IncrementOnFailure), schema.Default("false")),
	}
}
