// Command fileguard sniffs file content types and checks them against
// upload allow-lists from the terminal, using the same engine the library
// exposes to services.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinkycollie/fileguard"
	"github.com/pinkycollie/fileguard/policyfile"
)

var (
	classifierName string
	allowFlag      []string
	contextFlag    string
	policyPath     string
	jsonOut        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fileguard",
		Short: "Content-based file type validation",
		Long: `Fileguard detects the real MIME type of a file from its content and
checks it against an allow-list, ignoring the filename and extension.`,
		Example: `  fileguard detect photo.png
  fileguard check upload.bin --allow image/png,image/jpeg --context profile-photo
  fileguard check upload.bin --policy policy.yaml --context document-upload`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&classifierName, "classifier", "content", "Classification engine: content or signature")

	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Print the MIME type detected from file content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, content, err := loadGuardAndFile(args[0])
			if err != nil {
				return err
			}

			mimeType, err := g.Detect(content)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd, map[string]string{
					"type":        mimeType,
					"fingerprint": fileguard.Fingerprint(content),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", mimeType, fileguard.Fingerprint(content))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate file content against an allow-list",
		Long: `Check validates the file against an allow-list resolved in order of
precedence: --allow, then the context's entry in --policy, then the
built-in defaults. Exits non-zero when the type is blocked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, content, err := loadGuardAndFile(args[0])
			if err != nil {
				return err
			}

			allowlist, err := resolveAllowlist()
			if err != nil {
				return err
			}

			decision, err := g.Validate(content, allowlist, contextFlag)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := printJSON(cmd, decision); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), decision.Summary())
			}

			if !decision.Allowed {
				os.Exit(2)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&allowFlag, "allow", nil, "Allowed MIME types (comma-separated, supports image/* wildcards)")
	cmd.Flags().StringVar(&contextFlag, "context", "", "Upload context label for the decision and policy lookup")
	cmd.Flags().StringVar(&policyPath, "policy", "", "YAML policy file with per-context allow-lists")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func loadGuardAndFile(path string) (*fileguard.Guard, []byte, error) {
	classifier, err := fileguard.ClassifierByName(classifierName)
	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return fileguard.NewGuard(fileguard.WithClassifier(classifier)), content, nil
}

// resolveAllowlist picks the allow-list for check: the --allow flag wins,
// then the policy file, then nil for the built-in defaults.
func resolveAllowlist() ([]string, error) {
	if len(allowFlag) > 0 {
		return allowFlag, nil
	}
	if policyPath != "" {
		f, err := policyfile.Load(policyPath)
		if err != nil {
			return nil, err
		}
		label := contextFlag
		if label == "" {
			label = fileguard.DefaultContext
		}
		return f.AllowlistFor(label), nil
	}
	return nil, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	return out.Encode(v)
}
