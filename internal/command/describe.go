package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplesurance/ccnetcfg/internal/command/flag"
	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

const (
	describeNameParam        = "name"
	describeNodeParam        = "node"
	describeItemParam        = "item"
	describeCategoryParam    = "category"
	describeRequiredParam    = "required"
	describeSinceParam       = "since"
	describeDefaultParam     = "default"
	describeAllowedParam     = "allowed"
	describeAliasesParam     = "aliases"
	describeGroupParam       = "group"
	describeDescriptionParam = "description"
)

var describeHeaders = map[string]string{
	describeNameParam:        "Name",
	describeNodeParam:        "Node",
	describeItemParam:        "Item",
	describeCategoryParam:    "Category",
	describeRequiredParam:    "Required",
	describeSinceParam:       "Since",
	describeDefaultParam:     "Default",
	describeAllowedParam:     "Allowed",
	describeAliasesParam:     "Aliases",
	describeGroupParam:       "Group",
	describeDescriptionParam: "Description",
}

func init() {
	rootCmd.AddCommand(&newDescribeCmd().Command)
}

const describeLongHelp = `
Print the properties of a component type.

TYPE is the name of a registered type, as listed by 'ccnetcfg ls types'.
If the name is registered in multiple categories, the category must be
passed with --category.
`

type describeCmd struct {
	cobra.Command

	category *flag.OneOf
	format   *flag.Format
	fields   *flag.Fields
}

func newDescribeCmd() *describeCmd {
	cmd := describeCmd{
		Command: cobra.Command{
			Use:               "describe TYPE",
			Short:             "print the properties of a component type",
			Long:              strings.TrimSpace(describeLongHelp),
			Example:           "ccnetcfg describe svn",
			Args:              cobra.ExactArgs(1),
			ValidArgsFunction: completeTypeName,
		},
		category: flag.NewOneOfFlag("category", "", "category of the type", categoryNames()...),
		format:   flag.NewFormatFlag(),
		fields: flag.NewFields([]string{
			describeNameParam,
			describeNodeParam,
			describeItemParam,
			describeCategoryParam,
			describeRequiredParam,
			describeSinceParam,
			describeDefaultParam,
			describeAllowedParam,
			describeAliasesParam,
			describeGroupParam,
			describeDescriptionParam,
		}),
	}

	cmd.fields.Fields = []string{
		describeNameParam,
		describeNodeParam,
		describeRequiredParam,
		describeSinceParam,
		describeDefaultParam,
		describeDescriptionParam,
	}

	cmd.Run = cmd.run

	cmd.Flags().Var(cmd.category, "category", cmd.category.Usage(term.Highlight))
	_ = cmd.category.RegisterFlagCompletion(&cmd.Command)
	cmd.Flags().Var(cmd.format, "format", cmd.format.Usage(term.Highlight))
	_ = cmd.format.RegisterFlagCompletion(&cmd.Command)
	cmd.Flags().VarP(cmd.fields, "fields", "f", cmd.fields.Usage(term.Highlight))
	_ = cmd.fields.RegisterFlagCompletion(&cmd.Command, "fields")

	return &cmd
}

func (c *describeCmd) run(_ *cobra.Command, args []string) {
	reg := c.lookup(args[0])
	if reg == nil {
		return
	}

	if c.format.IsPlain() {
		c.printTypeInfo(reg)
	}

	headers := make([]string, 0, len(c.fields.Fields))
	for _, f := range c.fields.Fields {
		headers = append(headers, describeHeaders[f])
	}

	formatter := mustNewFormatter(c.format.Val, headers)

	for _, info := range schema.Describe(reg.New()) {
		mustWriteRow(formatter, c.assembleRow(&info)...)
	}

	exitOnErr(formatter.Flush())
}

func (c *describeCmd) lookup(name string) *schema.Registration {
	if c.category.Val != "" {
		reg, exist := cfg.Types.Lookup(schema.Category(c.category.Val), name)
		if !exist {
			fatal(exitCodeNotExist, "no %s type named %q is registered", c.category.Val, name)
			return nil
		}

		return reg
	}

	regs := cfg.Types.Find(name)
	switch len(regs) {
	case 0:
		fatal(exitCodeNotExist, "no type named %q is registered", name)
		return nil

	case 1:
		return regs[0]

	default:
		cats := make([]string, 0, len(regs))
		for _, r := range regs {
			cats = append(cats, string(r.Category))
		}

		fatal(exitCodeError, "type %q is registered in multiple categories (%s), specify one with --category",
			name, strings.Join(cats, ", "))
		return nil
	}
}

func (c *describeCmd) printTypeInfo(reg *schema.Registration) {
	stdout.Printf("%s %s\n", term.Highlight("Type:       "), reg.Name)
	stdout.Printf("%s %s\n", term.Highlight("Category:   "), reg.Category)

	if since := sinceValue(reg.Since); since != nil {
		stdout.Printf("%s %s\n", term.Highlight("Since:      "), since)
	}

	for _, l := range reg.Legacy {
		stdout.Printf("%s %s\n", term.Highlight("Legacy Name:"), l)
	}

	if reg.Description != "" {
		stdout.Printf("%s %s\n", term.Highlight("Description:"), reg.Description)
	}

	stdout.Println()
}

func (c *describeCmd) assembleRow(info *schema.FieldInfo) []any {
	row := make([]any, 0, len(c.fields.Fields))
	isPlain := c.format.IsPlain()

	for _, f := range c.fields.Fields {
		switch f {
		case describeNameParam:
			row = append(row, info.Name)
		case describeNodeParam:
			row = append(row, info.Node.String())
		case describeItemParam:
			row = append(row, info.Item)
		case describeCategoryParam:
			row = append(row, string(info.Category))
		case describeRequiredParam:
			if isPlain {
				row = append(row, term.ColoredRequired(info.Required))
			} else {
				row = append(row, info.Required)
			}
		case describeSinceParam:
			row = append(row, sinceValue(info.Since))
		case describeDefaultParam:
			row = append(row, info.Default)
		case describeAllowedParam:
			row = append(row, info.Allowed)
		case describeAliasesParam:
			row = append(row, info.Aliases)
		case describeGroupParam:
			row = append(row, info.Group)
		case describeDescriptionParam:
			row = append(row, info.Description)
		default:
			panic(fmt.Sprintf("unsupported value %q in fields parameter", f))
		}
	}

	return row
}
