package cfg

import "github.com/simplesurance/ccnetcfg/pkg/schema"

var stateTypes = []typeDef{
	{
		category:    CategoryState,
		class:       "FileStateManager",
		description: "stores the project state in a file",
		new:         func() schema.Component { return &FileState{} },
	},
}

// FileState stores the integration state of a project in a file in
// Directory.
type FileState struct {
	StateBase

	Directory string
}

func (*FileState) TypeName() string { return "state" }

func (s *FileState) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("directory", schema.String(&s.Directory),
			schema.Description("directory of the state file, defaults to the server directory")),
	}
}
