package cfg

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func decodeString(t *testing.T, v schema.Version, data string, comp schema.Component) error {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(data))

	return DecodeComponent(v, doc.Root(), comp)
}

func TestEmailPublisherEncoding(t *testing.T) {
	p := EmailPublisher{
		From:     "a@b.com",
		MailHost: "smtp.b.com",
		Users:    []*EmailUser{{Name: "u", Address: "u@b.com"}},
	}

	el, err := EncodeComponent(LatestVersion, &p)
	require.NoError(t, err)

	assert.Equal(t, "email", el.Tag)
	assert.Equal(t, "a@b.com", el.SelectAttrValue("from", ""))
	assert.Equal(t, "smtp.b.com", el.SelectAttrValue("mailhost", ""))

	users := el.SelectElement("users")
	require.NotNil(t, users)
	require.Len(t, users.ChildElements(), 1)

	user := users.ChildElements()[0]
	assert.Equal(t, "user", user.Tag)
	assert.Equal(t, "u", user.SelectAttrValue("name", ""))
	assert.Equal(t, "u@b.com", user.SelectAttrValue("address", ""))
	assert.Len(t, user.Attr, 2)

	assert.Nil(t, el.SelectElement("groups"), "empty groups must not be written")

	var decoded EmailPublisher
	require.NoError(t, DecodeComponent(LatestVersion, el, &decoded))
	assert.Equal(t, p, decoded)
}

func TestEmailPublisherUndefinedGroup(t *testing.T) {
	p := EmailPublisher{
		From:     "a@b.com",
		MailHost: "smtp.b.com",
		Users:    []*EmailUser{{Name: "u", Address: "u@b.com", Group: "devs"}},
	}

	err := schema.Validate(Types, LatestVersion, "", &p)
	require.Error(t, err)
	assert.Equal(t, []string{"users", "user[0]", "group"}, schema.Path(err))
}

func TestEmailPublisherReportsAllUndefinedGroups(t *testing.T) {
	p := EmailPublisher{
		From:     "a@b.com",
		MailHost: "smtp.b.com",
		Users: []*EmailUser{
			{Name: "u1", Address: "u1@b.com", Group: "devs"},
			{Name: "u2", Address: "u2@b.com", Group: "ops"},
			{Name: "u3", Address: "u3@b.com", Group: "qa"},
		},
		Groups: []*EmailGroup{{Name: "ops", Notification: NotificationAlways}},
	}

	err := schema.Validate(Types, LatestVersion, "", &p)

	var violations schema.Violations
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 2)
	assert.Equal(t, []string{"users", "user[0]", "group"}, schema.Path(violations[0]))
	assert.Equal(t, []string{"users", "user[2]", "group"}, schema.Path(violations[1]))
	assert.ErrorContains(t, violations[1], `group "qa" is not defined`)
}

func TestEncodingRequiredFieldMissing(t *testing.T) {
	testcases := []struct {
		name     string
		comp     schema.Component
		property string
	}{
		{name: "exec", comp: &ExecTask{}, property: "executable"},
		{name: "svn", comp: &SvnSourceControl{}, property: "trunkUrl"},
		{name: "email", comp: &EmailPublisher{From: "a@b.com"}, property: "mailhost"},
		{name: "scheduleTrigger", comp: &ScheduleTrigger{}, property: "time"},
		{name: "merge", comp: &MergeFilesTask{}, property: "files"},
		{name: "multi", comp: &MultiSourceControl{}, property: "sourceControls"},
		{name: "project", comp: &Project{}, property: "name"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeComponent(LatestVersion, tc.comp)
			require.ErrorIs(t, err, schema.ErrRequired)

			var reqErr *schema.RequiredError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tc.comp.TypeName(), reqErr.Type)
			assert.Equal(t, tc.property, reqErr.Property)
		})
	}
}

func TestProjectQueueAttributesAreVersionGated(t *testing.T) {
	p := Project{Name: "website", Queue: "dotnet", QueuePriority: ptr(3)}

	t.Run("encode before 1.3", func(t *testing.T) {
		el, err := EncodeComponent(schema.V(1, 2), &p)
		require.NoError(t, err)

		assert.Nil(t, el.SelectAttr("queue"))
		assert.Nil(t, el.SelectAttr("queuePriority"))
	})

	t.Run("encode since 1.3", func(t *testing.T) {
		el, err := EncodeComponent(Version13, &p)
		require.NoError(t, err)

		assert.Equal(t, "dotnet", el.SelectAttrValue("queue", ""))
		assert.Equal(t, "3", el.SelectAttrValue("queuePriority", ""))
	})

	t.Run("decode before 1.3", func(t *testing.T) {
		var decoded Project
		err := decodeString(t, schema.V(1, 2), `<project name="website" queue="dotnet" queuePriority="3"/>`, &decoded)
		require.NoError(t, err)

		assert.Equal(t, "website", decoded.Name)
		assert.Empty(t, decoded.Queue)
		assert.Nil(t, decoded.QueuePriority)
	})

	t.Run("decode since 1.3", func(t *testing.T) {
		var decoded Project
		err := decodeString(t, Version13, `<project name="website" queue="dotnet" queuePriority="3"/>`, &decoded)
		require.NoError(t, err)

		assert.Equal(t, p, decoded)
	})
}

func TestSecurityRequiresVersion15(t *testing.T) {
	p := Project{Name: "website", Security: &NullProjectSecurity{}}

	el, err := EncodeComponent(Version14, &p)
	require.NoError(t, err)
	assert.Nil(t, el.SelectElement("security"), "security field must be skipped before 1.5")

	el, err = EncodeComponent(Version15, &p)
	require.NoError(t, err)

	sec := el.SelectElement("security")
	require.NotNil(t, sec)
	assert.Equal(t, "nullProjectSecurity", sec.SelectAttrValue(schema.TypeAttr, ""))
}

func TestGitRequiresVersion14(t *testing.T) {
	p := Project{Name: "docs", SourceControl: &GitSourceControl{Repository: "https://git.example.com/docs.git"}}

	_, err := EncodeComponent(Version13, &p)
	var versionErr *schema.VersionError
	require.ErrorAs(t, err, &versionErr)
	assert.Equal(t, "git", versionErr.Name)
	assert.Equal(t, []string{"sourcecontrol"}, schema.Path(err))

	var decoded Project
	err = decodeString(t, Version13,
		`<project name="docs"><sourcecontrol type="git"><repository>x</repository></sourcecontrol></project>`,
		&decoded,
	)
	require.ErrorAs(t, err, &versionErr)
}

func TestResolveByElementName(t *testing.T) {
	p := Project{}
	err := decodeString(t, LatestVersion, `
<project name="p">
  <triggers>
    <intervalTrigger seconds="30"/>
    <scheduleTrigger time="12:00"/>
  </triggers>
  <sourceControl type="filesystem"><repositoryRoot>/src</repositoryRoot></sourceControl>
  <labeller type="dateLabeller"/>
  <preBuild><nullTask/></preBuild>
</project>`, &p)
	require.NoError(t, err)

	require.Len(t, p.Triggers, 2)
	assert.IsType(t, &IntervalTrigger{}, p.Triggers[0])
	assert.IsType(t, &ScheduleTrigger{}, p.Triggers[1])
	assert.Equal(t, &FileSystemSourceControl{RepositoryRoot: "/src"}, p.SourceControl)
	assert.IsType(t, &DateLabeller{}, p.Labeller)
	require.Len(t, p.PreBuild, 1)
	assert.IsType(t, &NullTask{}, p.PreBuild[0])
}

func TestResolveByLegacyTypeAttribute(t *testing.T) {
	testcases := []struct {
		name     string
		typeAttr string
	}{
		{
			name:     "full name",
			typeAttr: "CCNetConfig.Core.Components.Triggers.IntervalTrigger",
		},
		{
			name:     "assembly qualified name",
			typeAttr: "CCNetConfig.Core.Components.Triggers.IntervalTrigger, CCNetConfig.Core, Version=1.0.0.0",
		},
		{
			name:     "class name in other namespace",
			typeAttr: "CCNetConfig.Plugins.IntervalTrigger",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var p Project
			err := decodeString(t, LatestVersion,
				`<project name="p"><triggers><trigger ccnetconfigType="`+tc.typeAttr+`" seconds="45"/></triggers></project>`,
				&p,
			)
			require.NoError(t, err)

			exp := &IntervalTrigger{Seconds: ptr(45)}
			exp.SetLegacyType(tc.typeAttr)

			require.Len(t, p.Triggers, 1)
			assert.Equal(t, exp, p.Triggers[0])
		})
	}
}

func TestResolveUnknownType(t *testing.T) {
	var p Project
	err := decodeString(t, LatestVersion, `<project name="p"><tasks><nant/><powershell/></tasks></project>`, &p)

	var unknownErr *schema.UnknownTypeError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, CategoryTask, unknownErr.Category)
	assert.Equal(t, "powershell", unknownErr.Name)
	assert.Equal(t, []string{"tasks", "powershell[1]"}, schema.Path(err))
}

func TestResolveLegacyTypeOfOtherCategory(t *testing.T) {
	var p Project
	err := decodeString(t, LatestVersion,
		`<project name="p"><triggers><x ccnetconfigType="CCNetConfig.Core.Components.Tasks.ExecTask"/></triggers></project>`,
		&p,
	)

	var mismatchErr *schema.TypeMismatchError
	require.ErrorAs(t, err, &mismatchErr)
}

func TestLegacyTypeName(t *testing.T) {
	name, ok := LegacyTypeName(CategorySourceControl, "svn")
	require.True(t, ok)
	assert.Equal(t, "CCNetConfig.Core.Components.SourceControls.SvnSourceControl", name)

	name, ok = LegacyTypeName(CategoryItem, "project")
	require.True(t, ok)
	assert.Equal(t, "CCNetConfig.Core.Components.Project", name)

	_, ok = LegacyTypeName(CategoryTask, "svn")
	assert.False(t, ok)
}

func TestEnumValuesAreCaseInsensitive(t *testing.T) {
	var trigger IntervalTrigger
	err := decodeString(t, LatestVersion, `<intervalTrigger buildCondition="forcebuild"/>`, &trigger)
	require.NoError(t, err)
	assert.Equal(t, BuildConditionForceBuild, trigger.BuildCondition)

	err = decodeString(t, LatestVersion, `<intervalTrigger buildCondition="sometimes"/>`, &trigger)
	var valErr *schema.ValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"buildCondition"}, schema.Path(err))
}

func TestComponentValidation(t *testing.T) {
	testcases := []struct {
		name string
		comp schema.Component
		path []string
	}{
		{
			name: "negative interval",
			comp: &IntervalTrigger{Seconds: ptr(-1)},
			path: []string{"seconds"},
		},
		{
			name: "invalid schedule time",
			comp: &ScheduleTrigger{Time: "25:00"},
			path: []string{"time"},
		},
		{
			name: "invalid filter end time",
			comp: &FilterTrigger{StartTime: "10:00", EndTime: "10h", Trigger: &IntervalTrigger{}},
			path: []string{"endTime"},
		},
		{
			name: "invalid exit codes",
			comp: &ExecTask{Executable: "make", SuccessExitCodes: "0,x"},
			path: []string{"successExitCodes"},
		},
		{
			name: "cleanup value zero",
			comp: &ArtifactCleanupPublisher{CleanUpMethod: CleanUpKeepLastXBuilds, CleanUpValue: ptr(0)},
			path: []string{"cleanUpValue"},
		},
		{
			name: "invalid release start date",
			comp: &IterationLabeller{ReleaseStartDate: "05.01.2026"},
			path: []string{"releaseStartDate"},
		},
		{
			name: "duplicate permission",
			comp: &DefaultProjectSecurity{Permissions: []Permission{
				&UserPermission{Name: "alice"},
				&UserPermission{Name: "alice"},
			}},
			path: []string{"permissions", "userPermission[1]"},
		},
		{
			name: "negative queue priority",
			comp: &Project{Name: "p", QueuePriority: ptr(-3)},
			path: []string{"queuePriority"},
		},
		{
			name: "queue locks itself",
			comp: &Queue{Name: "q", LockQueues: []string{"other", "q"}},
			path: []string{"lockqueues"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.Validate(Types, LatestVersion, "", tc.comp)
			require.Error(t, err)

			var violations schema.Violations
			require.ErrorAs(t, err, &violations)
			require.Len(t, violations, 1, violations.Error())
			assert.Equal(t, tc.path, schema.Path(violations[0]))
		})
	}
}

func TestProjectValidationCollectsAllViolations(t *testing.T) {
	p := Project{
		Name:                    " p",
		QueuePriority:           ptr(-1),
		MaxSourceControlRetries: ptr(-1),
		Tasks:                   []PublisherTask{&ExecTask{}},
	}

	err := schema.Validate(Types, LatestVersion, "", &p)

	var violations schema.Violations
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 4, violations.Error())

	var paths [][]string
	for _, v := range violations {
		paths = append(paths, schema.Path(v))
	}

	assert.Contains(t, paths, []string{"tasks", "exec[0]"})
	assert.Contains(t, paths, []string{"name"})
	assert.Contains(t, paths, []string{"queuePriority"})
	assert.Contains(t, paths, []string{"maxSourceControlRetries"})
	assert.True(t, errors.Is(err, schema.ErrRequired))
}

func TestQueueLockQueuesAttribute(t *testing.T) {
	var q Queue
	err := decodeString(t, LatestVersion, `<queue name="q" lockqueues="a, b,,c"/>`, &q)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, q.LockQueues)

	el, err := EncodeComponent(LatestVersion, &q)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", el.SelectAttrValue("lockqueues", ""))
}

func TestRolePermissionEncoding(t *testing.T) {
	p := RolePermission{
		Name:   "devs",
		Users:  []string{"alice", "bob"},
		Rights: Rights{ForceBuild: SecurityRightAllow},
	}

	el, err := EncodeComponent(LatestVersion, &p)
	require.NoError(t, err)

	assert.Equal(t, "devs", el.SelectAttrValue("name", ""))
	assert.Equal(t, "Allow", el.SelectElement("forceBuildRight").Text())
	require.NotNil(t, el.SelectElement("users"))
	assert.Len(t, el.SelectElement("users").SelectElements("userName"), 2)
	assert.Nil(t, el.SelectElement("defaultRight"))

	var decoded RolePermission
	require.NoError(t, DecodeComponent(LatestVersion, el, &decoded))
	assert.Equal(t, p, decoded)
}

func TestPermissionKeepsLegacyType(t *testing.T) {
	const legacy = "CCNetConfig.Core.Components.Security.UserPermission, CCNetConfig.Core"

	var p UserPermission
	err := decodeString(t, LatestVersion,
		`<userPermission ccnetconfigType="`+legacy+`" name="ci"><forceBuildRight>Allow</forceBuildRight></userPermission>`,
		&p,
	)
	require.NoError(t, err)
	assert.Equal(t, legacy, p.LegacyType())
	assert.Equal(t, SecurityRightAllow, p.ForceBuild)

	el, err := EncodeComponent(LatestVersion, &p)
	require.NoError(t, err)
	assert.Equal(t, legacy, el.SelectAttrValue(schema.LegacyTypeAttr, ""))
}
