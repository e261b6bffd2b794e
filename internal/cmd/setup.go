package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/oxdebate/internal/config"
	"github.com/Iron-Ham/oxdebate/internal/errors"
	"github.com/Iron-Ham/oxdebate/internal/tui/styles"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the working directory for generating debates",
	Long: `Create the output directory and config/secrets/, write a default
config/config.yaml if none exists, and check that the API secrets file is
in place. A missing secrets file is reported but does not fail setup.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Get()

	fmt.Fprintln(out, styles.Title.Render("Setting up oxdebate"))

	secretsDir := filepath.Dir(cfg.Secrets.Path)
	for _, dir := range []string{cfg.Output.Dir, secretsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		fmt.Fprintf(out, "%s %s/\n", styles.SuccessMsg.Render("✓"), dir)
	}

	if _, err := os.Stat(config.ProjectConfigFile); os.IsNotExist(err) {
		if err := writeDefaultConfig(config.ProjectConfigFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s wrote %s\n", styles.SuccessMsg.Render("✓"), config.ProjectConfigFile)
	} else {
		fmt.Fprintf(out, "%s %s already exists\n", styles.Muted.Render("-"), config.ProjectConfigFile)
	}

	secrets, err := config.LoadSecrets(cfg.Secrets.Path)
	switch {
	case errors.Is(err, errors.ErrSecretsNotFound):
		printWarning(out, "API key configuration not found at "+cfg.Secrets.Path)
		fmt.Fprintln(out, styles.Muted.Render("Copy your OpenAI config.json there before generating a debate."))
	case err != nil:
		printWarning(out, err.Error())
	default:
		fmt.Fprintf(out, "%s API key found in %s\n", styles.SuccessMsg.Render("✓"), cfg.Secrets.Path)
		if err := secrets.RequireProvider(cfg.TTS.Provider); err != nil {
			printWarning(out, err.Error())
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next: oxdebate generate --motion \"<motion>\"")
	return nil
}
