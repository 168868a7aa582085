package cmd

import (
	"fmt"
	goio "io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/model"
	"github.com/poppolopoppo/vsexport/internal/msvc"
)

/***************************************
 * Property table
 ***************************************/

type propertyRow struct {
	Cell        msvc.ValueCell
	Label       string
	Choices     []msvc.PropertyChoice
	Description string
}

type propertyTable struct {
	rows []propertyRow
}

func (x *propertyTable) AddProperty(cell msvc.ValueCell, label string, choices []msvc.PropertyChoice, description string) {
	x.rows = append(x.rows, propertyRow{Cell: cell, Label: label, Choices: choices, Description: description})
}

func (x *propertyTable) Find(key string) (*propertyRow, bool) {
	for i, it := range x.rows {
		if it.Cell.Key == key {
			return &x.rows[i], true
		}
	}
	return nil, false
}

func (x *propertyRow) DisplayValue() string {
	value, ok := x.Cell.Value()
	if !ok {
		return "(default)"
	}
	for _, it := range x.Choices {
		if it.Value == value {
			return it.Label
		}
	}
	return fmt.Sprint(value)
}

func (x *propertyRow) DisplayChoices() string {
	labels := make([]string, len(x.Choices))
	for i, it := range x.Choices {
		labels[i] = it.Label
	}
	return strings.Join(labels, " | ")
}

// Choices are matched by label or by value, anything goes for free-form properties
func (x *propertyRow) Assign(in string) error {
	value := any(in)
	if len(x.Choices) > 0 {
		found := false
		for _, it := range x.Choices {
			if strings.EqualFold(in, it.Label) || (it.Value != nil && strings.EqualFold(in, fmt.Sprint(it.Value))) {
				value, found = it.Value, true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid value %q for %q, expected one of: %s", in, x.Cell.Key, x.DisplayChoices())
		}
	}

	if value == nil || value == "" {
		x.Cell.Settings.Remove(x.Cell.Key)
	} else {
		x.Cell.Settings.Set(x.Cell.Key, value)
	}
	return nil
}

func (x *propertyTable) Render(dst goio.Writer, title string) error {
	pterm.DefaultSection.WithWriter(dst).Println(title)

	data := pterm.TableData{{"Key", "Property", "Value", "Choices"}}
	for _, it := range x.rows {
		data = append(data, []string{it.Cell.Key, it.Label, it.DisplayValue(), it.DisplayChoices()})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(dst).WithData(data).Render()
}

/***************************************
 * Properties
 ***************************************/

type propertiesFlags struct {
	Exporter      string
	Configuration string
	Assignments   []string
}

func newPropertiesCommand(env *environment) *cobra.Command {
	flags := propertiesFlags{}
	cmd := &cobra.Command{
		Use:     "properties",
		Short:   "List or edit the settings understood by the Visual Studio exporters",
		GroupID: GROUP_PROJECT,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.properties(cmd, flags)
		},
	}
	addExporterFlag(cmd, &flags.Exporter)
	cmd.Flags().StringVar(&flags.Configuration, "configuration", "", "only show (or edit) the settings of this build configuration")
	cmd.Flags().StringArrayVar(&flags.Assignments, "set", nil, "assign key=value and save the project, an empty value restores the default")
	return cmd
}

func parseAssignment(in string) (key, value string, err error) {
	key, value, ok := strings.Cut(in, "=")
	if !ok || len(strings.TrimSpace(key)) == 0 {
		return "", "", fmt.Errorf("invalid assignment %q, expected key=value", in)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}

func (x *environment) properties(cmd *cobra.Command, flags propertiesFlags) error {
	filename, project, err := x.loadProject()
	if err != nil {
		return err
	}
	exporters, err := selectExporters(project, x.exporterFilter(flags.Exporter))
	if err != nil {
		return err
	}

	var tables []*propertyTable
	var titles []string
	for _, exporter := range exporters {
		if len(flags.Configuration) == 0 {
			table := &propertyTable{}
			exporter.CreateExporterProperties(table)
			tables = append(tables, table)
			titles = append(titles, exporter.Descriptor().Name)
		}
		for _, config := range exporter.Settings.Configurations {
			if len(flags.Configuration) > 0 && !strings.EqualFold(config.Name, flags.Configuration) {
				continue
			}
			table := &propertyTable{}
			exporter.CreateConfigurationProperties(config, table)
			tables = append(tables, table)
			titles = append(titles, exporter.Descriptor().Name+" / "+config.Name)
		}
	}
	if len(tables) == 0 {
		return fmt.Errorf("%s: no configuration named %q", project.Name, flags.Configuration)
	}

	if len(flags.Assignments) > 0 {
		return assignProperties(filename, project, tables, flags.Assignments)
	}

	for i, table := range tables {
		if err := table.Render(cmd.OutOrStdout(), titles[i]); err != nil {
			return err
		}
	}
	return nil
}

// Every assignment must match at least one table, nothing is saved otherwise
func assignProperties(filename string, project *model.Project, tables []*propertyTable, assignments []string) error {
	for _, it := range assignments {
		key, value, err := parseAssignment(it)
		if err != nil {
			return err
		}

		assigned := 0
		for _, table := range tables {
			if row, ok := table.Find(key); ok {
				if err := row.Assign(value); err != nil {
					return err
				}
				assigned++
			}
		}
		if assigned == 0 {
			return fmt.Errorf("%s: unknown property %q", project.Name, key)
		}
		base.LogVerbose(LogCommand, "%s: %s = %q in %d settings", project.Name, key, value, assigned)
	}

	if err := model.SaveProject(filename, project); err != nil {
		return err
	}
	base.LogClaim(LogCommand, "%s: saved %d assignments", filename, len(assignments))
	return nil
}
