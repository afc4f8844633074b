package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// jdSource names where the job description comes from: a file or a URL.
type jdSource struct {
	path         string
	url          string
	useBrowser   bool
	allowPrivate bool // permit postings on loopback and internal networks
}

func (s jdSource) validate() error {
	if s.path == "" && s.url == "" {
		return fmt.Errorf("either --jd or --jd-url must be provided")
	}
	if s.path != "" && s.url != "" {
		return fmt.Errorf("--jd and --jd-url are mutually exclusive; provide only one")
	}
	return nil
}

// load ingests the job description with the fetch settings from cfg.
func (s jdSource) load(ctx context.Context, cfg config.Config) (string, error) {
	if s.path != "" {
		text, _, err := ingestion.IngestFromFile(ctx, s.path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	}

	opts := ingestion.URLOptions{
		Fetch: &fetch.Options{Timeout: cfg.Fetch.Timeout, AllowPrivateHosts: s.allowPrivate || cfg.Fetch.AllowPrivateHosts},
	}
	if s.useBrowser || cfg.Fetch.UseBrowser {
		opts.Renderer = fetch.ChromeRenderer(cfg.Fetch.Timeout)
	}
	text, meta, err := ingestion.IngestFromURL(ctx, s.url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job description: %w", err)
	}
	logger.Debug().Str("platform", meta.Platform).Bool("rendered", meta.Rendered).Msg("job description fetched")
	return text, nil
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	var (
		resumePath string
		jd         jdSource
		format     string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume against a job description",
		Long: `Analyze a resume (PDF, DOCX, HTML or text) against a job description given as a file or URL.
Prints matched and missing skills, the match percentage, the ATS score breakdown and the candidate email.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := jd.validate(); err != nil {
				return err
			}
			if format != formatJSON && format != formatText {
				return fmt.Errorf("invalid --format %q: must be json or text", format)
			}

			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			analyzer, err := newAnalyzer(cfg)
			if err != nil {
				return err
			}

			var resume, jdText string
			g, gctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				text, _, err := ingestion.IngestFromFile(gctx, resumePath)
				if err != nil {
					return fmt.Errorf("failed to read resume: %w", err)
				}
				resume = text
				return nil
			})
			g.Go(func() error {
				text, err := jd.load(gctx, cfg)
				jdText = text
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			req := types.AnalyzeRequest{Resume: resume, JD: jdText}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("input too large: %w", err)
			}

			result := analyzer.Analyze(resume, jdText)
			return writeResult(cmd.OutOrStdout(), format, result)
		},
	}

	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to the resume (PDF, DOCX, HTML or text)")
	cmd.Flags().StringVarP(&jd.path, "jd", "j", "", "Path to the job description")
	cmd.Flags().StringVarP(&jd.url, "jd-url", "u", "", "URL of the job posting")
	cmd.Flags().BoolVar(&jd.useBrowser, "use-browser", false, "Render JavaScript-heavy job postings in headless Chrome")
	cmd.Flags().BoolVar(&jd.allowPrivate, "allow-private-hosts", false, "Allow --jd-url to point at loopback or internal addresses")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or text")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func writeResult(out io.Writer, format string, result *types.AnalysisResult) error {
	if format == formatText {
		observability.NewPrinter(out).PrintAnalysis(result)
		return nil
	}
	return writeJSON(out, result)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
