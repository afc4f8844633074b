package main

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

func newSkillsCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Inspect the skill dictionary",
	}
	cmd.AddCommand(newSkillsListCmd(global), newSkillsExtractCmd(global))
	return cmd
}

func newSkillsListCmd(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the known skills and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := newAnalyzer(cfg)
			if err != nil {
				return err
			}
			dict := analyzer.Dictionary()

			switch format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), dict)
			case formatText:
				observability.NewPrinter(cmd.OutOrStdout()).PrintSkillList("SKILL DICTIONARY", dict.Skills(), dict.AliasTable())
				return nil
			default:
				return fmt.Errorf("invalid --format %q: must be json or text", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: json or text")
	return cmd
}

func newSkillsExtractCmd(global *globalOptions) *cobra.Command {
	var (
		jd     jdSource
		format string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "List the skills a job description requires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := jd.validate(); err != nil {
				return err
			}
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := newAnalyzer(cfg)
			if err != nil {
				return err
			}

			text, err := jd.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			required := analyzer.Dictionary().ExtractRequired(text)

			switch format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"required_skills": required})
			case formatText:
				observability.NewPrinter(cmd.OutOrStdout()).PrintSkillList("REQUIRED SKILLS", required, nil)
				return nil
			default:
				return fmt.Errorf("invalid --format %q: must be json or text", format)
			}
		},
	}

	cmd.Flags().StringVarP(&jd.path, "jd", "j", "", "Path to the job description")
	cmd.Flags().StringVarP(&jd.url, "jd-url", "u", "", "URL of the job posting")
	cmd.Flags().BoolVar(&jd.useBrowser, "use-browser", false, "Render JavaScript-heavy job postings in headless Chrome")
	cmd.Flags().BoolVar(&jd.allowPrivate, "allow-private-hosts", false, "Allow --jd-url to point at loopback or internal addresses")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: json or text")
	return cmd
}
