package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stagewire "github.com/stagewire/stagewire-aws-go"
	"github.com/stagewire/stagewire-aws-go/deploy"
	"github.com/stagewire/stagewire-aws-go/internal/discover"
	"github.com/stagewire/stagewire-aws-go/internal/registry"
	"github.com/stagewire/stagewire-aws-go/internal/template"
	"github.com/stagewire/stagewire-aws-go/internal/validation"
)

type buildOptions struct {
	pkg       string
	output    string
	format    string
	stackName string
	context   string
}

func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [package]",
		Short: "Generate a CloudFormation template from resource declarations",
		Long: `Build scans a stack package for resource declarations and generates
a CloudFormation template.

The stack name selects the runtime image: production stacks (any name
containing "prod") start on the bootstrap image and receive application
images through the delivery pipeline; other stacks run an image built
from the local build context.

Examples:
  stagewire-aws build ./service
  stagewire-aws build ./service --stack-name web-api-dev
  stagewire-aws build ./toolchain -o toolchain.template.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pkg = args[0]
			return runBuild(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Template format: json or yaml")
	cmd.Flags().StringVar(&opts.stackName, "stack-name", deploy.ProdStackName, "Stack name the template will deploy as")
	cmd.Flags().StringVar(&opts.context, "context", "cmd/webapi", "Docker build context for non-production images")

	return cmd
}

func runBuild(opts *buildOptions) error {
	tmpl, err := synthesize(opts.pkg, opts.stackName, opts.context)
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case "json":
		data, err = template.ToJSON(tmpl)
	case "yaml":
		data, err = template.ToYAML(tmpl)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", opts.format)
	}
	if err != nil {
		return fmt.Errorf("serializing template: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.output, err)
		}
		fmt.Fprintf(os.Stderr, "Template written to %s\n", opts.output)
		return nil
	}

	fmt.Println(string(data))
	return nil
}

// synthesize runs the full pipeline for one stack package: discover
// declarations, cross-check them against the registry, resolve the runtime
// image, build the template, and verify required properties.
func synthesize(pkg, stackName, contextDir string) (*stagewire.Template, error) {
	provider, err := stackFor(pkg)
	if err != nil {
		return nil, err
	}

	d, err := discover.Discover(discover.Options{Packages: []string{pkg}})
	if err != nil {
		return nil, err
	}
	if len(d.Errors) > 0 {
		for _, e := range d.Errors {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return nil, fmt.Errorf("build failed")
	}

	if errs := validation.CheckRegistry(d, provider); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return nil, fmt.Errorf("build failed")
	}

	reg, err := registry.New(provider)
	if err != nil {
		return nil, err
	}

	// The image override happens after registry construction: reference
	// signatures are computed from the declared (bootstrap) default, and
	// only the emitted Parameters section should carry the resolved image.
	// The override goes on a copy so the package-level declaration keeps
	// its declared default across rebuilds.
	if param, ok := provider.Parameters["ContainerImageUri"]; ok {
		image, err := deploy.ResolveRuntimeImage(stackName, contextDir)
		if err != nil {
			return nil, err
		}
		resolved := *param
		resolved.Default = image
		provider.Parameters["ContainerImageUri"] = &resolved
	}

	builder := template.NewBuilder(d, reg)
	builder.SetDescription(fmt.Sprintf("%s (synthesized by stagewire-aws)", stackName))

	tmpl, err := builder.Build()
	if err != nil {
		return nil, err
	}

	if errs := validation.CheckRequired(tmpl); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return nil, fmt.Errorf("build failed")
	}

	return tmpl, nil
}
