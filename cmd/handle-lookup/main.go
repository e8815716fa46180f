// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the handle-lookup CLI. It fetches the
// records of one repository collection, indexes them by call number, and
// prints the sip_uuid, handle URL, and title of each requested call number.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/handle-lookup/internal/config"
	"github.com/pdiddy/handle-lookup/internal/httputil"
	"github.com/pdiddy/handle-lookup/internal/index"
	"github.com/pdiddy/handle-lookup/internal/repo"
	"github.com/pdiddy/handle-lookup/internal/report"
	"github.com/pdiddy/handle-lookup/internal/secrets"
	"github.com/pdiddy/handle-lookup/pkg/types"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitFetchError = 2
)

// app carries the process dependencies of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	env    config.LookupEnv

	secrets map[string]string
	file    *viper.Viper
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handle-lookup [flags] CALL_NUMBER...",
		Short: "Look up repository handles for call numbers",
		Long: `handle-lookup fetches the records of one collection from the repository
API, indexes them by the first MODS identifier (the call number), and prints
the sip_uuid, handle URL, and title of every record matching each call number.

Options fall back to environment variables when not given on the command line:
REPO_ENDPOINT, REPO_API_KEY, REPO_SIP_UUID, REPO_HANDLE_URL. The API key may
also be stored in .secrets/repo-api-key.`,
		Example: `  handle-lookup B002.01.0097.0022 B002.01.0097.0016 \
    --repo-endpoint http://localhost:8000/repo/api/v1/records`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: a.runLookup,
	}

	cmd.PersistentFlags().String("config", "", "config file (default: ./handle-lookup.yaml or ~/.config/handle-lookup/config.yaml)")
	cmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files")
	config.RegisterFlags(cmd.Flags())
	setVersion(cmd)

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

// load reads the secrets directory and the optional config file.
func (a *app) load(cmd *cobra.Command) error {
	dir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(dir, a.stderr)
	if err != nil {
		return err
	}
	a.secrets = s
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(a.stderr, "Loaded secrets: %v\n", keys)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("handle-lookup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "handle-lookup"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
		return nil
	}
	fmt.Fprintln(a.stderr, "Using config file:", v.ConfigFileUsed())
	a.file = v
	return nil
}

func (a *app) runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(args, config.Sources{
		Flags:   cmd.Flags(),
		File:    a.file,
		Env:     a.env,
		Secrets: a.secrets,
	})
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	// Structured output keeps stdout machine-readable.
	progress := a.stdout
	if cfg.Format != types.FormatText {
		progress = a.stderr
	}
	p := report.NewPrinter(progress)
	p.Header(cfg)

	client := repo.NewClient(cfg.HTTPConfig)
	client.Warn = a.stderr
	resp, err := client.FetchRecords(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	p.Fetched(resp.Elements, resp.Dropped())

	idx := index.Build(resp.Records)
	p.Indexed(idx)

	return report.Render(a.stdout, cfg.Format, report.Results(cfg, idx))
}

// execute runs the CLI with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, env config.LookupEnv) int {
	a := &app{stdout: stdout, stderr: stderr, env: env}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	printError(stderr, err)
	return exitCode(err)
}

// exitCode maps err to the process exit status: 2 for any failure to fetch
// the records, 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var fe *repo.FetchError
	if errors.As(err, &fe) {
		return exitFetchError
	}
	return exitError
}

func printError(w io.Writer, err error) {
	var se *httputil.StatusError
	var fe *repo.FetchError
	switch {
	case errors.As(err, &se):
		line := fmt.Sprintf("[HTTP ERROR] %d: %s", se.StatusCode, se.Body)
		if errors.As(err, &fe) && fe.RequestID != "" {
			line += fmt.Sprintf(" (request %s)", fe.RequestID)
		}
		fmt.Fprintln(w, line)
	case errors.As(err, &fe):
		fmt.Fprintf(w, "[ERROR] Failed to fetch records: %v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}
