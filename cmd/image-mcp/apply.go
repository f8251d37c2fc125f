package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

const (
	inputName  = "input"
	outputName = "output"
)

var applyCmd = &cobra.Command{
	Use:   "apply <command> [params...]",
	Short: "Apply one transformation to an image file",
	Long: `Read the input file, apply a command and write the result.

The command takes its numeric parameters as positional arguments, e.g.

  image-mcp apply -i koala.ppm -o koala-bright.png brighten 10
  image-mcp apply -i koala.png -o tiles.png mosaic 500
  image-mcp apply -i koala.png -o edges.png edge-detect 100 200

Run "image-mcp commands" to list every command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands accepted by apply",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

func init() {
	applyCmd.Flags().StringP("input", "i", "", "Input image file")
	applyCmd.Flags().StringP("output", "o", "", "Output image file")
	applyCmd.MarkFlagRequired("input")
	applyCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(commandsCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	name := args[0]
	if name == "load" || name == "save" {
		return fmt.Errorf("%s is implied by --input and --output", name)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer cfg.Logging.SetLogger().Close()
	env := transform.Env{Random: cfg.RandomSource(), Codec: cfg.CodecOptions()}

	load, err := transform.NewLoad(inputPath, inputName)
	if err != nil {
		return err
	}
	params := append(append([]string{}, args[1:]...), inputName, outputName)
	op, err := transform.Build(name, params, env)
	if err != nil {
		return err
	}
	save, err := transform.NewSave(outputName, outputPath, env.Codec)
	if err != nil {
		return err
	}

	store := imaging.NewStore()
	for _, t := range []transform.Transform{load, op, save} {
		if err := t.Apply(store); err != nil {
			return fmt.Errorf("%s: %w", t.Name(), err)
		}
	}

	info := save.Info()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (%dx%d %s, %s)\n",
		op.Name(), inputPath, outputPath, info.Width, info.Height, info.Format, info.FileSize)
	return nil
}

func runCommands(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, c := range transform.Commands {
		fmt.Fprintf(w, "%s\t%s\n", c.Usage, c.Description)
	}
	return w.Flush()
}
