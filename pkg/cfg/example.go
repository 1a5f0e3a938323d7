package cfg

import (
	"net/url"
)

func ptr[T any](v T) *T {
	return &v
}

func mustParseURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}

	return u
}

// ExampleCruiseControl returns a document with exemplary projects and
// queues. It contains every component type of Types.
func ExampleCruiseControl() *CruiseControl {
	c := New(LatestVersion)

	c.Queues = []*Queue{
		{
			Name:       "dotnet",
			Duplicates: DuplicatesApplyForceBuildsReplace,
			LockQueues: []string{"nightly"},
		},
	}

	c.Projects = []*Project{
		exampleWebsiteProject(),
		{
			Name:          "docs",
			Queue:         "dotnet",
			QueuePriority: ptr(2),
			Category:      "Documentation",
			SourceControl: &GitSourceControl{
				Repository: "https://git.example.com/ccnet/docs.git",
				Branch:     "main",
			},
			Triggers: []Trigger{
				&URLTrigger{
					URL:     mustParseURL("https://git.example.com/ccnet/docs/last-change"),
					Seconds: ptr(300),
				},
			},
			Labeller: &DateLabeller{YearFormat: "0000", RevisionFormat: "00"},
			Tasks: []PublisherTask{
				&ExecTask{
					Executable:     "make",
					BuildArgs:      "html",
					TimeoutSeconds: ptr(900),
				},
			},
			Publishers: []PublisherTask{&XMLLogPublisher{}},
			Security: &InheritedProjectSecurity{
				DefaultRight: SecurityRightDeny,
				Permissions: []Permission{
					&UserPermission{
						Name:   "docs-bot",
						Rights: Rights{ForceBuild: SecurityRightAllow},
					},
				},
			},
		},
		{
			Name:  "nightly",
			Queue: "nightly",
			Triggers: []Trigger{
				&ScheduleTrigger{
					Time:     "23:30",
					WeekDays: []Weekday{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
				},
			},
			SourceControl: &SvnSourceControl{TrunkURL: "svn://svn.example.com/ccnet/trunk"},
			Labeller: &IterationLabeller{
				Prefix:           "Nightly",
				DurationWeeks:    ptr(3),
				ReleaseStartDate: "2026/01/05",
			},
			Tasks: []PublisherTask{
				&NAntTask{
					BuildFile: "nightly.build",
					NoLogo:    ptr(true),
					Targets:   []string{"clean", "package"},
				},
			},
			Publishers: []PublisherTask{
				&ArtifactCleanupPublisher{
					CleanUpMethod: CleanUpDeleteBuildsOlderThanXDays,
					CleanUpValue:  ptr(30),
				},
			},
			Security: &NullProjectSecurity{},
		},
		{
			Name: "installer",
			Triggers: []Trigger{
				&ProjectTrigger{Project: "website", TriggerStatus: IntegrationStatusSuccess},
			},
			SourceControl: &NullSourceControl{},
			Labeller: &RemoteProjectLabeller{
				ServerURI: mustParseURL("tcp://localhost:21234/CruiseManager.rem"),
				Project:   "website",
			},
			Tasks: []PublisherTask{
				&ExecTask{Executable: "makensis.exe", BuildArgs: "installer.nsi"},
			},
		},
		{
			Name:          "assemblies",
			SourceControl: &FileSystemSourceControl{RepositoryRoot: `C:\Sources\Assemblies`},
			Labeller: &AssemblyVersionLabeller{
				Major: ptr(1),
				Minor: ptr(5),
			},
			Tasks: []PublisherTask{
				&MSBuildTask{ProjectFile: "Assemblies.sln", Targets: "Build"},
			},
		},
	}

	c.Link()

	return c
}

func exampleWebsiteProject() *Project {
	return &Project{
		Name:                       "website",
		Queue:                      "dotnet",
		QueuePriority:              ptr(1),
		Category:                   "Web",
		Description:                "public website",
		WorkingDirectory:           `C:\Builds\website\WorkingDirectory`,
		ArtifactDirectory:          `C:\Builds\website\Artifacts`,
		WebURL:                     mustParseURL("http://ccnet.example.com/ccnet/server/local/project/website/ViewProjectReport.aspx"),
		ModificationDelaySeconds:   ptr(10),
		PublishExceptions:          ptr(true),
		MaxSourceControlRetries:    ptr(3),
		StopOnMaxRetries:           ptr(false),
		SourceControlErrorHandling: ReportOnRetryAmount,
		InitialState:               ProjectStateStarted,
		StartupMode:                StartupModeUseLastState,
		Triggers: []Trigger{
			&IntervalTrigger{
				Name:           "continuous",
				Seconds:        ptr(60),
				BuildCondition: BuildConditionIfModificationExists,
			},
			&FilterTrigger{
				StartTime: "23:00",
				EndTime:   "23:59",
				Trigger:   &IntervalTrigger{Seconds: ptr(600)},
				WeekDays:  []Weekday{"Sunday"},
			},
			&MultiTrigger{
				Operator: MultiTriggerOperatorAnd,
				Triggers: []Trigger{
					&ProjectTrigger{
						ServerURI:     mustParseURL("tcp://buildserver:21234/CruiseManager.rem"),
						Project:       "assemblies",
						TriggerStatus: IntegrationStatusSuccess,
						InnerTrigger:  &IntervalTrigger{Seconds: ptr(30), InitialSeconds: ptr(5)},
					},
					&ScheduleTrigger{
						Time:           "06:00",
						RandomOffset:   ptr(15),
						BuildCondition: BuildConditionForceBuild,
					},
				},
			},
		},
		SourceControl: &MultiSourceControl{
			RequireChangesFromAll: ptr(false),
			SourceControls: []SourceControl{
				&SvnSourceControl{
					TrunkURL:      "svn://svn.example.com/website/trunk",
					Username:      "ccnet",
					AutoGetSource: ptr(true),
					TagOnSuccess:  ptr(true),
					TagBaseURL:    "svn://svn.example.com/website/tags",
				},
				&GitSourceControl{
					Repository:       "https://git.example.com/website/assets.git",
					WorkingDirectory: "assets",
					FetchSubmodules:  ptr(false),
				},
				&FileSystemSourceControl{
					RepositoryRoot:    `\\fileserver\website\content`,
					IgnoreMissingRoot: ptr(true),
				},
				&NullSourceControl{FailGetSource: ptr(false)},
			},
		},
		Labeller: &DefaultLabeller{
			Prefix:             "Website-",
			IncrementOnFailure: ptr(false),
			InitialBuildLabel:  ptr(100),
		},
		State: &FileState{Directory: `C:\CCNet\State`},
		PreBuild: []PublisherTask{
			&ExecTask{
				Executable: "cleanup.cmd",
				Environment: []*EnvironmentVariable{
					{Name: "CONFIGURATION", Value: "Release"},
				},
				SuccessExitCodes: "0,1",
			},
		},
		Tasks: []PublisherTask{
			&MSBuildTask{
				WorkingDirectory: `C:\Builds\website\WorkingDirectory`,
				ProjectFile:      "Website.sln",
				BuildArgs:        "/p:Configuration=Release",
				TimeoutSeconds:   ptr(1200),
			},
			&NAntTask{BuildFile: "website.build", Targets: []string{"test"}},
			&MergeFilesTask{Files: []string{`TestResults\*.xml`}},
			&NullTask{SimulateFailure: ptr(false)},
		},
		Publishers: []PublisherTask{
			&XMLLogPublisher{LogDir: `C:\Builds\website\Logs`},
			&StatisticsPublisher{},
			&ArtifactCleanupPublisher{CleanUpMethod: CleanUpKeepLastXBuilds, CleanUpValue: ptr(50)},
			&BuildPublisher{
				SourceDir:      `C:\Builds\website\WorkingDirectory\bin`,
				PublishDir:     `\\webserver\website`,
				UseLabelSubDir: ptr(false),
			},
			&ModificationHistoryPublisher{OnlyLogWhenChangesFound: ptr(true)},
			&EmailPublisher{
				From:           "ccnet@example.com",
				MailHost:       "smtp.example.com",
				MailPort:       ptr(587),
				IncludeDetails: ptr(true),
				UseSSL:         ptr(true),
				Users: []*EmailUser{
					{Name: "alice", Group: "developers", Address: "alice@example.com"},
					{Name: "buildmaster", Address: "buildmaster@example.com"},
				},
				Groups: []*EmailGroup{
					{Name: "developers", Notification: NotificationChange},
				},
			},
			&ForceBuildPublisher{
				Project:           "installer",
				IntegrationStatus: IntegrationStatusSuccess,
				EnforcerName:      "website",
			},
		},
		ExternalLinks: []*ExternalLink{
			{Name: "Website", URL: mustParseURL("https://www.example.com")},
		},
		Security: &DefaultProjectSecurity{
			DefaultRight: SecurityRightDeny,
			Guest:        "guest",
			Permissions: []Permission{
				&UserPermission{
					Name:   "buildmaster",
					Rights: Rights{DefaultRight: SecurityRightAllow},
				},
				&RolePermission{
					Name:   "developers",
					Users:  []string{"alice", "bob"},
					Rights: Rights{ForceBuild: SecurityRightAllow, StartProject: SecurityRightDeny},
				},
			},
		},
	}
}
