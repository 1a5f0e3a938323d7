package cfg

import (
	"fmt"

	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// SecurityRight is the permission for an action.
type SecurityRight string

const (
	SecurityRightInherit SecurityRight = "Inherit"
	SecurityRightAllow   SecurityRight = "Allow"
	SecurityRightDeny    SecurityRight = "Deny"
)

var securityRights = []SecurityRight{SecurityRightInherit, SecurityRightAllow, SecurityRightDeny}

var securityTypes = []typeDef{
	{
		category:    CategorySecurity,
		class:       "DefaultProjectSecurity",
		since:       Version15,
		description: "permissions defined in the project",
		new:         func() schema.Component { return &DefaultProjectSecurity{} },
	},
	{
		category:    CategorySecurity,
		class:       "InheritedProjectSecurity",
		since:       Version15,
		description: "server permissions extended by the project",
		new:         func() schema.Component { return &InheritedProjectSecurity{} },
	},
	{
		category:    CategorySecurity,
		class:       "NullProjectSecurity",
		since:       Version15,
		description: "allows everything",
		new:         func() schema.Component { return &NullProjectSecurity{} },
	},
}

var permissionTypes = []typeDef{
	{
		category:    CategoryPermission,
		class:       "UserPermission",
		since:       Version15,
		description: "rights of a user",
		new:         func() schema.Component { return &UserPermission{} },
	},
	{
		category:    CategoryPermission,
		class:       "RolePermission",
		since:       Version15,
		description: "rights of a group of users",
		new:         func() schema.Component { return &RolePermission{} },
	},
}

// validatePermissionNames ensures that no permission is defined twice.
func validatePermissionNames(permissions []Permission) error {
	seen := map[string]struct{}{}

	for i, p := range permissions {
		var name string

		switch v := p.(type) {
		case *UserPermission:
			name = v.Name
		case *RolePermission:
			name = v.Name
		default:
			continue
		}

		if name == "" {
			continue
		}

		key := p.TypeName() + "/" + name
		if _, exist := seen[key]; exist {
			return schema.WrapPath(
				fmt.Errorf("%s %q is defined multiple times", p.TypeName(), name),
				"permissions", fmt.Sprintf("%s[%d]", p.TypeName(), i),
			)
		}

		seen[key] = struct{}{}
	}

	return nil
}

// DefaultProjectSecurity grants the rights defined in Permissions, all
// other actions get DefaultRight.
type DefaultProjectSecurity struct {
	SecurityBase

	DefaultRight SecurityRight
	Guest        string
	Permissions  []Permission
}

func (*DefaultProjectSecurity) TypeName() string { return "defaultProjectSecurity" }

func (s *DefaultProjectSecurity) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("defaultRight", schema.Enum(&s.DefaultRight, securityRights...),
			schema.Default(string(SecurityRightInherit))),
		schema.Attr("guest", schema.String(&s.Guest),
			schema.Description("name of the account that is used for anonymous users")),
		schema.Variants("permissions", CategoryPermission, &s.Permissions),
	}
}

func (s *DefaultProjectSecurity) Validate() error {
	return validatePermissionNames(s.Permissions)
}

// InheritedProjectSecurity uses the server permissions, extended by
// Permissions.
type InheritedProjectSecurity struct {
	SecurityBase

	DefaultRight SecurityRight
	Permissions  []Permission
}

func (*InheritedProjectSecurity) TypeName() string { return "inheritedProjectSecurity" }

func (s *InheritedProjectSecurity) Fields() []schema.Field {
	return []schema.Field{
		schema.Attr("defaultRight", schema.Enum(&s.DefaultRight, securityRights...),
			schema.Default(string(SecurityRightInherit))),
		schema.Variants("permissions", CategoryPermission, &s.Permissions),
	}
}

func (s *InheritedProjectSecurity) Validate() error {
	return validatePermissionNames(s.Permissions)
}

// NullProjectSecurity allows all actions.
type NullProjectSecurity struct {
	SecurityBase
}

func (*NullProjectSecurity) TypeName() string { return "nullProjectSecurity" }

func (*NullProjectSecurity) Fields() []schema.Field { return nil }

// Rights are the action permissions of a user or role.
type Rights struct {
	DefaultRight SecurityRight
	ForceBuild   SecurityRight
	StartProject SecurityRight
	SendMessage  SecurityRight
}

func (r *Rights) fields() []schema.Field {
	return []schema.Field{
		schema.Elem("defaultRight", schema.Enum(&r.DefaultRight, securityRights...), schema.Group("Rights")),
		schema.Elem("forceBuildRight", schema.Enum(&r.ForceBuild, securityRights...), schema.Group("Rights")),
		schema.Elem("startProjectRight", schema.Enum(&r.StartProject, securityRights...), schema.Group("Rights")),
		schema.Elem("sendMessageRight", schema.Enum(&r.SendMessage, securityRights...), schema.Group("Rights")),
	}
}

// UserPermission defines the rights of the user Name.
type UserPermission struct {
	PermissionBase
	Rights

	Name string
}

func (*UserPermission) TypeName() string { return "userPermission" }

func (p *UserPermission) Fields() []schema.Field {
	return append(
		[]schema.Field{schema.Attr("name", schema.String(&p.Name), schema.Required())},
		p.fields()...,
	)
}

// RolePermission defines the rights of the role Name, that Users are
// members of.
type RolePermission struct {
	PermissionBase
	Rights

	Name  string
	Users []string
}

func (*RolePermission) TypeName() string { return "rolePermission" }

func (p *RolePermission) Fields() []schema.Field {
	return append(
		[]schema.Field{
			schema.Attr("name", schema.String(&p.Name), schema.Required()),
			schema.Array("users", "userName", &p.Users),
		},
		p.fields()...,
	)
}
