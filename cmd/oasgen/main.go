package main

import (
	"log"
	"os"

	"github.com/oasforge/oasgen/pkg/generator"
	"github.com/oasforge/oasgen/pkg/oasgen"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "oasgen",
		Short: "Generate validators and client SDKs from OpenAPI specs",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var singleClient string
	var input string
	var typ string
	var outDir string
	var packageName string
	var name string
	var includeTags []string
	var excludeTags []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the plugin pipeline (validators + configured clients)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return oasgen.Run(configPath)
			}
			if input == "" || typ == "" || outDir == "" || packageName == "" || name == "" {
				return cmd.Help()
			}
			// No config file: fall back to the single-client template
			// generator directly, bypassing the plugin orchestrator
			// (there is nothing to orchestrate for one client).
			return generator.GenerateSDK(generator.GenerateSDKOptions{
				SingleClient: singleClient,
				Spec:         input,
				Type:         typ,
				OutDir:       outDir,
				PackageName:  packageName,
				Name:         name,
				IncludeTags:  includeTags,
				ExcludeTags:  excludeTags,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to oasgen.yaml config")
	cmd.Flags().StringVar(&singleClient, "client", "", "Generate only the named client from config")
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json)")
	cmd.Flags().StringVar(&typ, "type", "", "Client type (e.g., typescript)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	cmd.Flags().StringVar(&packageName, "package-name", "", "Package name")
	cmd.Flags().StringVar(&name, "client-name", "", "Client class name")
	cmd.Flags().StringArrayVar(&includeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&excludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generator.ValidateSpec(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
