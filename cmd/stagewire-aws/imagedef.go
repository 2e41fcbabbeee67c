package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stagewire/stagewire-aws-go/deploy"
	"github.com/stagewire/stagewire-aws-go/internal/imagedef"
)

func newImagedefCmd() *cobra.Command {
	var image string
	var output string

	cmd := &cobra.Command{
		Use:   "imagedef",
		Short: "Write the image-definitions artifact for ECS deploy actions",
		Long: `Imagedef writes an imagedefinitions.json file mapping the web-api
container to the given image URI. The pipeline's ECS deploy actions read
this artifact to roll the onebox and fleet services to a new image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if image == "" {
				return fmt.Errorf("--image is required")
			}
			if err := imagedef.Write(output, deploy.ContainerName, image); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Image definitions written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "Image URI to deploy")
	cmd.Flags().StringVarP(&output, "output", "o", deploy.ImageDefinitionsPath, "Output file")

	return cmd
}
