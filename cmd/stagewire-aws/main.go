// Command stagewire-aws generates CloudFormation templates from the Go
// declarations of the web-api delivery system.
//
// Usage:
//
//	stagewire-aws build ./service     Generate the service stack template
//	stagewire-aws build ./toolchain   Generate the pipeline stack template
//	stagewire-aws lint ./...          Check for issues
//	stagewire-aws version             Show version
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/service"
	"github.com/stagewire/stagewire-aws-go/toolchain"
)

// stackProviders maps stack package names to their registered declarations.
// Discovery finds the declarations in source; the provider supplies the
// runtime values for serialization.
func stackProviders() map[string]registry.Provider {
	return map[string]registry.Provider{
		"service": {
			Declarations: service.Declarations(),
			Parameters:   service.Parameters(),
			Outputs:      service.Outputs(),
		},
		"toolchain": {
			Declarations: toolchain.Declarations(),
			Parameters:   toolchain.Parameters(),
			Outputs:      toolchain.Outputs(),
		},
	}
}

// stackFor resolves a package argument like "./service" to its provider.
func stackFor(pkg string) (registry.Provider, error) {
	name := filepath.Base(strings.TrimSuffix(strings.TrimSuffix(pkg, "/..."), "/"))
	provider, ok := stackProviders()[name]
	if !ok {
		return registry.Provider{}, fmt.Errorf("unknown stack %q (expected ./service or ./toolchain)", name)
	}
	return provider, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "stagewire-aws",
		Short: "Generate CloudFormation templates for the web-api delivery system",
		Long: `stagewire-aws generates CloudFormation templates from Go resource declarations.

Infrastructure is declared using native Go syntax:

    var OneboxTargetGroup = elasticloadbalancingv2.TargetGroup{
        Protocol: "HTTP",
        VpcId:    VPC,
    }

Then generate CloudFormation JSON:

    stagewire-aws build ./service`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newListCmd(),
		newLintCmd(),
		newGraphCmd(),
		newWatchCmd(),
		newImagedefCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stagewire-aws %s\n", getVersion())
		},
	}
}
