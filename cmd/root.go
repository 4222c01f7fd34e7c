package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/demaconsulting/SarifMark/internal/fs"
	"github.com/demaconsulting/SarifMark/internal/log"
	"github.com/demaconsulting/SarifMark/pkg/pipeline"
	"github.com/demaconsulting/SarifMark/pkg/sarif"
	"github.com/demaconsulting/SarifMark/pkg/validation"
)

var (
	ErrorFileAccess = errors.New("file access")
	ErrorEncoding   = errors.New("encoding")
	ErrorValidation = errors.New("validation")
	ErrorAnalysis   = errors.New("analysis failed")
	ErrorUserInput  = errors.New("user error")
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// CLIConfig injects the pipeline entry points so tests can run the CLI
// in-process.
type CLIConfig struct {
	Version    string
	RunFunc    validation.RunFunc
	NewHarness func() *validation.Harness
}

func NewRootCommand(config CLIConfig) *cobra.Command {
	if config.RunFunc == nil {
		config.RunFunc = pipeline.Run
	}
	if config.NewHarness == nil {
		config.NewHarness = validation.NewHarness
	}

	command := &cobra.Command{
		Use:           "sarifmark",
		Short:         "Summarize SARIF static-analysis results as markdown and gate builds on findings",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, config)
		},
	}

	command.Flags().String("sarif", "", "SARIF input file (required for analysis)")
	command.Flags().String("report", "", "Write the markdown report to this file")
	command.Flags().Int("report-depth", sarif.MinDepth, "Markdown heading depth of the report title (1-6)")
	command.Flags().String("heading", "", "Report title text, defaults to '<tool> Analysis'")
	command.Flags().Bool("enforce", false, "Fail with a non-zero exit code if any results are found")
	command.Flags().Bool("validate", false, "Run the self-validation checks instead of analysis")
	command.Flags().String("results", "", "Write validation results to this file (.trx or .xml)")
	command.Flags().Bool("silent", false, "Suppress console output")
	command.Flags().String("log", "", "Append output to this log file")
	command.Flags().StringP("config", "c", "", "SarifMark configuration file with report defaults")
	command.PersistentFlags().BoolP("verbose", "v", false, "Verbose debug output")

	command.AddCommand(NewVersionCmd(config.Version))
	command.AddCommand(NewConfigCmd())

	return command
}

func runRoot(cmd *cobra.Command, config CLIConfig) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	silent, _ := cmd.Flags().GetBool("silent")
	logFilename, _ := cmd.Flags().GetString("log")
	validate, _ := cmd.Flags().GetBool("validate")
	resultsFilename, _ := cmd.Flags().GetString("results")

	if verbose {
		log.SetVerbose()
	}

	out := cmd.OutOrStdout()
	if silent {
		out = io.Discard
		log.Disable()
	}
	if logFilename != "" {
		logFile, err := os.OpenFile(logFilename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrorFileAccess, err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		if silent {
			out = logFile
		} else {
			out = io.MultiWriter(out, logFile)
		}
	}

	if validate {
		return runValidate(cmd, config, out, resultsFilename)
	}

	if resultsFilename != "" {
		log.Warnf("--results is only used with --validate, ignoring")
	}
	return runAnalysis(cmd, config, out)
}

func runAnalysis(cmd *cobra.Command, config CLIConfig, out io.Writer) error {
	sarifFilename, _ := cmd.Flags().GetString("sarif")
	reportFilename, _ := cmd.Flags().GetString("report")
	reportDepth, _ := cmd.Flags().GetInt("report-depth")
	heading, _ := cmd.Flags().GetString("heading")
	enforce, _ := cmd.Flags().GetBool("enforce")
	configFilename, _ := cmd.Flags().GetString("config")

	if configFilename != "" {
		fileConfig, err := loadConfig(configFilename)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return fmt.Errorf("%w: %v", ErrorEncoding, err)
		}
		if !cmd.Flags().Changed("report-depth") && fileConfig.ReportDepth != 0 {
			reportDepth = fileConfig.ReportDepth
		}
		if !cmd.Flags().Changed("heading") {
			heading = fileConfig.Heading
		}
		if !cmd.Flags().Changed("enforce") {
			enforce = fileConfig.Enforce
		}
	}

	result := config.RunFunc(pipeline.Options{
		SarifFile:   sarifFilename,
		ReportFile:  reportFilename,
		ReportDepth: reportDepth,
		Heading:     heading,
		Enforce:     enforce,
	})

	if _, err := io.WriteString(out, result.Output); err != nil {
		return fmt.Errorf("%w: %v", ErrorFileAccess, err)
	}
	if result.ExitCode != pipeline.ExitOK {
		return ErrorAnalysis
	}
	return nil
}

func runValidate(cmd *cobra.Command, config CLIConfig, out io.Writer, resultsFilename string) error {
	summary := config.NewHarness().Run()

	for _, record := range summary.Records {
		label := passStyle.Render(string(record.Outcome))
		if record.Outcome != validation.OutcomePassed {
			label = failStyle.Render(string(record.Outcome))
		}
		fmt.Fprintf(out, "%s %s (%s)\n", label, record.Name, record.Duration)
		if record.ErrorMessage != "" {
			fmt.Fprintf(out, "  %s\n", record.ErrorMessage)
		}
	}
	fmt.Fprintf(out, "Validation: %d total, %d passed, %d failed\n",
		summary.Total, summary.Passed, summary.Failed)

	if resultsFilename != "" {
		if err := validation.WriteResults(resultsFilename, summary); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return fmt.Errorf("%w: %v", ErrorUserInput, err)
		}
	}

	if summary.Failed > 0 {
		fmt.Fprintln(out, "Error: validation failed")
		return ErrorValidation
	}
	return nil
}

func loadConfig(filename string) (sarif.Config, error) {
	obj, err := fs.ReadDecodeFile(filename, sarif.NewConfigDecoder())
	if err != nil {
		return sarif.Config{}, err
	}
	return obj.(sarif.Config), nil
}

func NewVersionCmd(version string) *cobra.Command {
	command := &cobra.Command{
		Use: "version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("A utility for summarizing SARIF static-analysis results as markdown")
			cmd.Println("Version:", version)
			return nil
		},
	}

	return command
}

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Creates a new configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "prints a new configuration file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configMap := map[string]any{
				"version":             "1",
				sarif.ConfigFieldName: sarif.DefaultConfig(),
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(configMap)
		},
	}

	cmd.AddCommand(initCmd)

	return cmd
}
