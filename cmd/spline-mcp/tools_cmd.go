package main

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tarif-dev/spline-mcp-server/internal/config"
	"github.com/Tarif-dev/spline-mcp-server/internal/core"
	"github.com/Tarif-dev/spline-mcp-server/internal/gateway"
	"github.com/Tarif-dev/spline-mcp-server/internal/spline"
)

// newToolsCmd creates the tools command, which prints the discovery listing:
// every registered operation with its input contract.
func newToolsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the registered operations and their input contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			client := spline.NewClient(cfg.BaseURL, cfg.APIToken)
			registry, err := gateway.NewRegistry(spline.Operations(client))
			if err != nil {
				return err
			}

			for _, op := range registry.List() {
				core.MustFprintf(os.Stdout, "%s — %s\n", op.Name, op.Description)
				printContract(op.Contract)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")

	return cmd
}

func printContract(contract gateway.Contract) {
	schema := gateway.JSONSchema(contract)
	properties, _ := schema["properties"].(map[string]any)
	required := map[string]bool{}
	if names, ok := schema["required"].([]string); ok {
		for _, name := range names {
			required[name] = true
		}
	}

	// JSONSchema sorts its iteration, but map order is lost in the result;
	// re-derive a stable order for printing.
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		property, _ := properties[name].(map[string]any)
		marker := "optional"
		if required[name] {
			marker = "required"
		}
		details := []string{property["type"].(string), marker}
		if enum, ok := property["enum"].([]string); ok {
			details = append(details, "one of: "+strings.Join(enum, "|"))
		}
		if format, ok := property["format"].(string); ok {
			details = append(details, format)
		}
		core.MustFprintf(os.Stdout, "    %-12s %s\n", name, strings.Join(details, ", "))
	}
}
