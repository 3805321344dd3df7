package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrmail/hrmail/internal/template"
)

const previewWidth = 60

var templateFile string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the e-mail templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:               "show KEY",
	Short:             "Print the body of a template",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTemplateKeys,
	RunE:              runTemplatesShow,
}

var templatesSetCmd = &cobra.Command{
	Use:               "set KEY",
	Short:             "Replace the body of a template (read from --file or stdin)",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTemplateKeys,
	RunE:              runTemplatesSet,
}

var templatesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default templates, keeping a backup of the current file",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesReset,
}

func init() {
	templatesSetCmd.Flags().StringVarP(&templateFile, "file", "f", "", "read the body from this file instead of stdin")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesSetCmd)
	templatesCmd.AddCommand(templatesResetCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	set, err := a.templates.LoadAll()
	if err != nil {
		return err
	}
	return writeTemplateList(cmd.OutOrStdout(), set)
}

func writeTemplateList(out io.Writer, set template.Set) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tPREVIEW")
	for _, e := range template.Catalog {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Title, preview(set[e.Key]))
	}
	return tw.Flush()
}

// preview returns the first non-empty line of body, shortened to previewWidth runes.
func preview(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > previewWidth {
			return string(r[:previewWidth-3]) + "..."
		}
		return line
	}
	return ""
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	body, err := a.templates.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), body)
	return nil
}

func runTemplatesSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !template.Known(key) {
		return fmt.Errorf("%w: %q", template.ErrUnknownTemplate, key)
	}

	body, err := readBody(cmd.InOrStdin(), templateFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("template body is empty")
	}

	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	if err := a.templates.Save(key, body); err != nil {
		return err
	}

	if !template.HasNamePlaceholder(body) {
		a.log.Warn().Str("template", key).Msgf("template has no %s placeholder, the greeting will not be personalized", template.NamePlaceholder)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Template %s saved.\n", key)
	return nil
}

func readBody(stdin io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template body: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read template body: %w", err)
	}
	return string(data), nil
}

func runTemplatesReset(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	if _, err := a.templates.Reset(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Templates restored to defaults in %s.\n", a.templates.Path())
	return nil
}

func completeTemplateKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := make([]string, 0, len(template.Catalog))
	for _, e := range template.Catalog {
		keys = append(keys, e.Key+"\t"+e.Title)
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
