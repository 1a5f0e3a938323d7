package cfg

import (
	"fmt"
	"net/url"
	"time"

	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// BuildCondition defines when a triggered integration builds.
type BuildCondition string

const (
	BuildConditionIfModificationExists BuildCondition = "IfModificationExists"
	BuildConditionForceBuild           BuildCondition = "ForceBuild"
)

var buildConditions = []BuildCondition{BuildConditionIfModificationExists, BuildConditionForceBuild}

// Weekday is the english name of a day of the week.
type Weekday string

var weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// IntegrationStatus is the result of an integration.
type IntegrationStatus string

const (
	IntegrationStatusSuccess   IntegrationStatus = "Success"
	IntegrationStatusFailure   IntegrationStatus = "Failure"
	IntegrationStatusException IntegrationStatus = "Exception"
	IntegrationStatusUnknown   IntegrationStatus = "Unknown"
)

// MultiTriggerOperator combines the results of the triggers of a
// MultiTrigger.
type MultiTriggerOperator string

const (
	MultiTriggerOperatorOr  MultiTriggerOperator = "Or"
	MultiTriggerOperatorAnd MultiTriggerOperator = "And"
)

const timeOfDayLayout = "15:04"

func validateTimeOfDay(property, val string) error {
	if val == "" {
		return nil
	}

	if _, err := time.Parse(timeOfDayLayout, val); err != nil {
		return schema.WrapPath(fmt.Errorf("%q is not a time of day in the format HH:MM", val), property)
	}

	return nil
}

var triggerTypes = []typeDef{
	{
		category:    CategoryTrigger,
		class:       "IntervalTrigger",
		description: "checks for modifications in a fixed interval",
		new:         func() schema.Component { return &IntervalTrigger{} },
	},
	{
		category:    CategoryTrigger,
		class:       "ScheduleTrigger",
		description: "starts an integration at a time of the day",
		new:         func() schema.Component { return &ScheduleTrigger{} },
	},
	{
		category:    CategoryTrigger,
		class:       "FilterTrigger",
		description: "suppresses the builds of another trigger in a time window",
		new:         func() schema.Component { return &FilterTrigger{} },
	},
	{
		category:    CategoryTrigger,
		class:       "ProjectTrigger",
		description: "starts an integration when another project was integrated",
		new:         func() schema.Component { return &ProjectTrigger{} },
	},
	{
		category:    CategoryTrigger,
		class:       "MultipleTrigger",
		description: "combines multiple triggers",
		new:         func() schema.Component { return &MultiTrigger{} },
	},
	{
		category:    CategoryTrigger,
		class:       "UrlTrigger",
		description: "starts an integration when the content of an URL changes",
		new:         func() schema.Component { return &URLTrigger{} },
	},
}

// IntervalTrigger checks for modifications every Seconds seconds.
type IntervalTrigger struct {
	TriggerBase

	Name           string
	Seconds        *int
	InitialSeconds *int
	BuildCondition BuildCondition
}

func (*IntervalTrigger) TypeName() string { return "intervalTrigger" }

func (t *IntervalTrigger) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&t.Name),
			schema.Description("name of the trigger, shown in the dashboard")),
		schema.Attr("seconds", schema.Int(&t.Seconds),
			schema.Default("60"),
			schema.Description("seconds between two modification checks")),
		schema.Attr("initialSeconds", schema.Int(&t.InitialSeconds),
			schema.Description("seconds before the first check after the server started")),
		schema.Attr("buildCondition", schema.Enum(&t.BuildCondition, buildConditions...),
			schema.Default(string(BuildConditionIfModificationExists))),
	}
}

func (t *IntervalTrigger) Validate() error {
	if t.Seconds != nil && *t.Seconds < 0 {
		return schema.WrapPath(fmt.Errorf("must not be negative, is %d", *t.Seconds), "seconds")
	}

	return nil
}

// ScheduleTrigger starts an integration once a day at Time.
type ScheduleTrigger struct {
	TriggerBase

	Name           string
	Time           string
	RandomOffset   *int
	BuildCondition BuildCondition
	WeekDays       []Weekday
}

func (*ScheduleTrigger) TypeName() string { return "scheduleTrigger" }

func (t *ScheduleTrigger) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&t.Name)),
		schema.Attr("time", schema.String(&t.Time), schema.Required(),
			schema.Description("time of the day in the format HH:MM")),
		schema.Attr("randomOffSetInMinutesFromTime", schema.Int(&t.RandomOffset),
			schema.Description("delays the start by a random amount of minutes")),
		schema.Attr("buildCondition", schema.Enum(&t.BuildCondition, buildConditions...),
			schema.Default(string(BuildConditionIfModificationExists))),
		schema.Array("weekDays", "weekDay", &t.WeekDays, schema.OneOf(weekdays...),
			schema.Description("days on which the trigger fires, all days if empty")),
	}
}

func (t *ScheduleTrigger) Validate() error {
	return validateTimeOfDay("time", t.Time)
}

// FilterTrigger wraps another trigger and suppresses its builds between
// StartTime and EndTime.
type FilterTrigger struct {
	TriggerBase

	StartTime      string
	EndTime        string
	Trigger        Trigger
	WeekDays       []Weekday
	BuildCondition BuildCondition
}

func (*FilterTrigger) TypeName() string { return "filterTrigger" }

func (t *FilterTrigger) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("startTime", schema.String(&t.StartTime), schema.Required()),
		schema.Attr("endTime", schema.String(&t.EndTime), schema.Required()),
		schema.Attr("buildCondition", schema.Enum(&t.BuildCondition, buildConditions...)),
		schema.Variant("trigger", CategoryTrigger, &t.Trigger, schema.Required(),
			schema.Description("trigger whose builds are filtered")),
		schema.Array("weekDays", "weekDay", &t.WeekDays, schema.OneOf(weekdays...)),
	}
}

func (t *FilterTrigger) Validate() error {
	if err := validateTimeOfDay("startTime", t.StartTime); err != nil {
		return err
	}

	return validateTimeOfDay("endTime", t.EndTime)
}

// ProjectTrigger starts an integration when Project, possibly running on
// another server, finished with TriggerStatus.
type ProjectTrigger struct {
	TriggerBase

	ServerURI     *url.URL
	Project       string
	TriggerStatus IntegrationStatus
	InnerTrigger  Trigger
}

func (*ProjectTrigger) TypeName() string { return "projectTrigger" }

func (t *ProjectTrigger) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("serverUri", schema.URL(&t.ServerURI),
			schema.Default("tcp://localhost:21234/CruiseManager.rem")),
		schema.Attr("project", schema.String(&t.Project), schema.Required()),
		schema.Elem("triggerStatus", schema.Enum(&t.TriggerStatus,
			IntegrationStatusSuccess,
			IntegrationStatusFailure,
			IntegrationStatusException,
			IntegrationStatusUnknown,
		), schema.Default(string(IntegrationStatusSuccess))),
		schema.Variant("innerTrigger", CategoryTrigger, &t.InnerTrigger,
			schema.Description("trigger that defines how often the other project is polled")),
	}
}

// MultiTrigger combines the results of Triggers with Operator.
type MultiTrigger struct {
	TriggerBase

	Operator MultiTriggerOperator
	Triggers []Trigger
}

func (*MultiTrigger) TypeName() string { return "multiTrigger" }

func (t *MultiTrigger) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("operator", schema.Enum(&t.Operator, MultiTriggerOperatorOr, MultiTriggerOperatorAnd),
			schema.Default(string(MultiTriggerOperatorOr))),
		schema.Variants("triggers", CategoryTrigger, &t.Triggers),
	}
}

// URLTrigger starts an integration when the resource at URL was modified.
type URLTrigger struct {
	TriggerBase

	Name           string
	URL            *url.URL
	Seconds        *int
	BuildCondition BuildCondition
}

func (*URLTrigger) TypeName() string { return "urlTrigger" }

func (t *URLTrigger) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("name", schema.String(&t.Name)),
		schema.Attr("url", schema.URL(&t.URL), schema.Required()),
		schema.Attr("seconds", schema.Int(&t.Seconds), schema.Default("60")),
		schema.Attr("buildCondition", schema.Enum(&t.BuildCondition, buildConditions...)),
	}
}
