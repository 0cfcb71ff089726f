package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"ats-analyzer/internal/analyses"
	"ats-analyzer/internal/bootstrap"
	"ats-analyzer/internal/extract"
	"ats-analyzer/internal/shared/config"
	"ats-analyzer/internal/shared/telemetry"
)

type options struct {
	resumePath string
	jdPath     string
	jdText     string
	provider   string
	model      string
	asJSON     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	// Keep stdout for the result.
	telemetry.SetOutput(stderr)

	cfg := config.Load()
	cfg.LLM = applyOverrides(cfg.LLM, opts)

	svc, err := newService(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	req, err := buildRequest(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	res, err := svc.Analyze(context.Background(), req)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeResult(stdout, res, opts.asJSON); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("analyze", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.resumePath, "resume", "r", "", "Path to the resume PDF")
	fs.StringVar(&opts.jdPath, "jd", "", "Path to a file containing the job description")
	fs.StringVar(&opts.jdText, "jd-text", "", "Job description text")
	fs.StringVar(&opts.provider, "provider", "", "Model provider (gemini or openai)")
	fs.StringVar(&opts.model, "model", "", "Model name")
	fs.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func applyOverrides(cfg config.LLM, opts options) config.LLM {
	if opts.provider != "" && !strings.EqualFold(opts.provider, cfg.Provider) {
		cfg = config.LoadLLM(opts.provider)
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	return cfg
}

func newService(cfg config.Config) (*analyses.Service, error) {
	completer, err := bootstrap.NewCompleter(context.Background(), cfg.LLM)
	if err != nil {
		return nil, err
	}
	return &analyses.Service{
		LLM:           completer,
		Extractor:     extract.NewExtractor(0),
		CredentialEnv: cfg.LLM.CredentialEnv,
		Provider:      cfg.LLM.Provider,
		Model:         cfg.LLM.Model,
	}, nil
}

func buildRequest(opts options) (analyses.Request, error) {
	req := analyses.Request{JobDescription: opts.jdText}
	if opts.jdPath != "" {
		data, err := os.ReadFile(opts.jdPath)
		if err != nil {
			return analyses.Request{}, fmt.Errorf("read job description: %w", err)
		}
		req.JobDescription = string(data)
	}
	if opts.resumePath != "" {
		data, err := os.ReadFile(opts.resumePath)
		if err != nil {
			return analyses.Request{}, fmt.Errorf("read resume: %w", err)
		}
		req.FileName = filepath.Base(opts.resumePath)
		req.Resume = data
	}
	return req, nil
}

func writeResult(w io.Writer, res analyses.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	keywords := "No major keywords missing!"
	if len(res.MissingKeywords) > 0 {
		keywords = strings.Join(res.MissingKeywords, ", ")
	}
	_, err := fmt.Fprintf(w, "Match Score: %s\n\nMissing Keywords:\n%s\n\nProfile Summary:\n%s\n", res.MatchPercentage, keywords, res.ProfileSummary)
	return err
}
