package cfg

import (
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

var sourceControlTypes = []typeDef{
	{
		category:    CategorySourceControl,
		class:       "SvnSourceControl",
		description: "Subversion repository",
		new:         func() schema.Component { return &SvnSourceControl{} },
	},
	{
		category:    CategorySourceControl,
		class:       "GitSourceControl",
		since:       Version14,
		description: "Git repository",
		new:         func() schema.Component { return &GitSourceControl{} },
	},
	{
		category:    CategorySourceControl,
		class:       "FileSystemSourceControl",
		description: "directory in the file system",
		new:         func() schema.Component { return &FileSystemSourceControl{} },
	},
	{
		category:    CategorySourceControl,
		class:       "MultiSourceControl",
		description: "combines multiple source control blocks",
		new:         func() schema.Component { return &MultiSourceControl{} },
	},
	{
		category:    CategorySourceControl,
		class:       "NullSourceControl",
		description: "never reports modifications",
		new:         func() schema.Component { return &NullSourceControl{} },
	},
}

// SvnSourceControl checks out TrunkURL from a Subversion server.
type SvnSourceControl struct {
	SourceControlBase

	TrunkURL         string
	WorkingDirectory string
	Executable       string
	Username         string
	Password         string
	AutoGetSource    *bool
	CleanCopy        *bool
	TagOnSuccess     *bool
	TagBaseURL       string
	TimeoutSeconds   *int
}

func (*SvnSourceControl) TypeName() string { return "svn" }

func (s *SvnSourceControl) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("trunkUrl", schema.String(&s.TrunkURL), schema.Required(),
			schema.Description("URL of the repository path that is checked out")),
		schema.Elem("workingDirectory", schema.String(&s.WorkingDirectory)),
		schema.Elem("executable", schema.String(&s.Executable), schema.Default("svn.exe")),
		schema.Elem("username", schema.String(&s.Username), schema.Group("Authentication")),
		schema.Elem("password", schema.String(&s.Password), schema.Group("Authentication")),
		schema.Elem("autoGetSource", schema.Bool(&s.AutoGetSource), schema.Default("true")),
		schema.Elem("cleanCopy", schema.Bool(&s.CleanCopy), schema.Default("false")),
		schema.Elem("tagOnSuccess", schema.Bool(&s.TagOnSuccess), schema.Default("false"),
			schema.Group("Tagging")),
		schema.Elem("tagBaseUrl", schema.String(&s.TagBaseURL), schema.Group("Tagging")),
		schema.Elem("timeout", schema.Int(&s.TimeoutSeconds), schema.Default("600")),
	}
}

// GitSourceControl clones Repository and checks out Branch.
type GitSourceControl struct {
	SourceControlBase

	Repository       string
	Branch           string
	WorkingDirectory string
	Executable       string
	AutoGetSource    *bool
	FetchSubmodules  *bool
	TagOnSuccess     *bool
	CommitterName    string
	CommitterEMail   string
}

func (*GitSourceControl) TypeName() string { return "git" }

func (s *GitSourceControl) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("repository", schema.String(&s.Repository), schema.Required()),
		schema.Elem("branch", schema.String(&s.Branch), schema.Default("master")),
		schema.Elem("workingDirectory", schema.String(&s.WorkingDirectory)),
		schema.Elem("executable", schema.String(&s.Executable), schema.Default("git")),
		schema.Elem("autoGetSource", schema.Bool(&s.AutoGetSource), schema.Default("true")),
		schema.Elem("fetchSubmodules", schema.Bool(&s.FetchSubmodules), schema.Default("true")),
		schema.Elem("tagOnSuccess", schema.Bool(&s.TagOnSuccess), schema.Default("false"),
			schema.Group("Tagging")),
		schema.Elem("committerName", schema.String(&s.CommitterName), schema.Group("Tagging")),
		schema.Elem("committerEMail", schema.String(&s.CommitterEMail), schema.Group("Tagging")),
	}
}

// FileSystemSourceControl detects modifications in RepositoryRoot.
type FileSystemSourceControl struct {
	SourceControlBase

	RepositoryRoot    string
	AutoGetSource     *bool
	IgnoreMissingRoot *bool
}

func (*FileSystemSourceControl) TypeName() string { return "filesystem" }

func (s *FileSystemSourceControl) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("repositoryRoot", schema.String(&s.RepositoryRoot), schema.Required()),
		schema.Elem("autoGetSource", schema.Bool(&s.AutoGetSource), schema.Default("false")),
		schema.Elem("ignoreMissingRoot", schema.Bool(&s.IgnoreMissingRoot), schema.Default("false")),
	}
}

// MultiSourceControl combines the modifications of SourceControls.
type MultiSourceControl struct {
	SourceControlBase

	RequireChangesFromAll *bool
	SourceControls        []SourceControl
}

func (*MultiSourceControl) TypeName() string { return "multi" }

func (s *MultiSourceControl) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("requireChangesFromAll", schema.Bool(&s.RequireChangesFromAll), schema.Default("false")),
		schema.Variants("sourceControls", CategorySourceControl, &s.SourceControls, schema.Required()),
	}
}

// NullSourceControl never reports modifications. It can simulate failures.
type NullSourceControl struct {
	SourceControlBase

	FailGetModifications   *bool
	FailLabelSourceControl *bool
	FailGetSource          *bool
}

func (*NullSourceControl) TypeName() string { return "nullSourceControl" }

func (s *NullSourceControl) Fields() []schema.Field {
	return []schema.Field{
		schema.Elem("failGetModifications", schema.Bool(&s.FailGetModifications)),
		schema.Elem("failLabelSourceControl", schema.Bool(&s.FailLabelSourceControl)),
		schema.Elem("failGetSource", schema.Bool(&s.FailGetSource)),
	}
}
