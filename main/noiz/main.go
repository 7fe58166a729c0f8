package main

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/machbase/neo-noise/mods/logging"
	"github.com/machbase/neo-noise/mods/presets"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(NewCmd().ExecuteContext(context.Background()))
}

func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "noiz [command] [flags]",
		Short:         "noiz samples and inspects procedural noise",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: configureLogging,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.PersistentFlags().String("log-level", "WARN", "`<Level>` TRACE, DEBUG, INFO, WARN or ERROR")
	rootCmd.PersistentFlags().String("log-file", "-", "`<Path>` of the log file, '-' for stderr")
	rootCmd.PersistentFlags().String("box-style", "light", "`<Style>` of tables: default, bold, double, light or round")

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the noise kinds",
		RunE:  doKinds,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample [flags]",
		Short: "Sample a grid of noise",
		RunE:  doSample,
	}
	addRecipeFlags(sampleCmd)
	addGridFlags(sampleCmd)
	sampleCmd.Flags().StringP("format", "f", "table", "`<Format>` table, csv or pgm")
	sampleCmd.Flags().StringP("output", "o", "", "`<Path>` of a png, bmp or tiff image to write instead of text")

	statsCmd := &cobra.Command{
		Use:   "stats [flags]",
		Short: "Print the value distribution of a grid of noise",
		RunE:  doStats,
	}
	addRecipeFlags(statsCmd)
	addGridFlags(statsCmd)
	statsCmd.Flags().Int("bins", 10, "`<N>` histogram bins")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [flags]",
		Short: "Print the dominant frequencies along a line of noise",
		RunE:  doSpectrum,
	}
	addRecipeFlags(spectrumCmd)
	spectrumCmd.Flags().Int("samples", 1024, "`<N>` samples along the x axis")
	spectrumCmd.Flags().Float32("step", 0.25, "`<Step>` between samples")
	spectrumCmd.Flags().Int("peaks", 8, "`<N>` peaks to print")

	rootCmd.AddCommand(
		kindsCmd,
		sampleCmd,
		statsCmd,
		spectrumCmd,
		newRandomCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func configureLogging(cmd *cobra.Command, args []string) error {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	file, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return err
	}
	cfg := logging.DefaultConfig()
	cfg.DefaultLevel = level
	cfg.Filename = file
	return logging.Configure(&cfg)
}

func addRecipeFlags(cmd *cobra.Command) {
	def := presets.DefaultRecipe()
	cmd.Flags().StringP("kind", "k", def.Kind, "`<Kind>` of noise, see 'noiz kinds'")
	cmd.Flags().String("recipe-file", "", "`<Path>` of a yaml or hcl recipe file")
	cmd.Flags().StringP("recipe", "r", "", "`<Name>` of the recipe in the recipe file")
	cmd.Flags().Uint32P("seed", "s", def.Seed, "`<Seed>`")
	cmd.Flags().Float32P("period", "p", def.Period, "`<Period>` of the noise")
	cmd.Flags().Int("octaves", def.Octaves, "`<N>` octaves of fractal kinds")
	cmd.Flags().Float32("persistence", def.Persistence, "`<Persistence>` of fractal kinds")
	cmd.Flags().Float32("lacunarity", def.Lacunarity, "`<Lacunarity>` of fractal kinds")
	cmd.Flags().Float32("warp-strength", def.WarpStrength, "`<Strength>` of warped kinds")
	cmd.Flags().Float32("regularity", def.Regularity, "`<Regularity>` of voronoi kinds, 0 to 1")
	cmd.Flags().Bool("snorm", false, "map the output to [-1, 1]")
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("width", "W", 16, "`<N>` samples along x")
	cmd.Flags().IntP("height", "H", 16, "`<N>` samples along y")
	cmd.Flags().Float32("step", 1, "`<Step>` between samples")
	cmd.Flags().Float32("x", 0, "`<X>` of the first sample")
	cmd.Flags().Float32("y", 0, "`<Y>` of the first sample")
}

// recipeFromFlags starts from the named recipe of --recipe-file, if any,
// and applies the recipe flags given on the command line.
func recipeFromFlags(cmd *cobra.Command) (presets.Recipe, error) {
	r := presets.DefaultRecipe()
	flags := cmd.Flags()
	if path, _ := flags.GetString("recipe-file"); path != "" {
		recipes, err := presets.LoadFile(path)
		if err != nil {
			return r, err
		}
		name, _ := flags.GetString("recipe")
		if name == "" && len(recipes) > 0 {
			name = recipes[0].Name
		}
		if r, err = presets.Find(recipes, name); err != nil {
			return r, err
		}
	}
	if flags.Changed("kind") || r.Name == "" {
		r.Kind, _ = flags.GetString("kind")
	}
	if flags.Changed("seed") {
		r.Seed, _ = flags.GetUint32("seed")
	}
	if flags.Changed("period") {
		r.Period, _ = flags.GetFloat32("period")
	}
	if flags.Changed("octaves") {
		r.Octaves, _ = flags.GetInt("octaves")
	}
	if flags.Changed("persistence") {
		r.Persistence, _ = flags.GetFloat32("persistence")
	}
	if flags.Changed("lacunarity") {
		r.Lacunarity, _ = flags.GetFloat32("lacunarity")
	}
	if flags.Changed("warp-strength") {
		r.WarpStrength, _ = flags.GetFloat32("warp-strength")
	}
	if flags.Changed("regularity") {
		r.Regularity, _ = flags.GetFloat32("regularity")
	}
	if flags.Changed("snorm") {
		r.SNorm, _ = flags.GetBool("snorm")
	}
	return r, r.Validate()
}

func newBox(cmd *cobra.Command, header ...any) table.Writer {
	w := table.NewWriter()
	w.SetOutputMirror(cmd.OutOrStdout())
	style := table.StyleLight
	name, _ := cmd.Flags().GetString("box-style")
	switch name {
	case "default":
		style = table.StyleDefault
	case "bold":
		style = table.StyleBold
	case "double":
		style = table.StyleDouble
	case "round":
		style = table.StyleRounded
	}
	w.SetStyle(style)
	if len(header) > 0 {
		w.AppendHeader(table.Row(header))
	}
	return w
}

func doKinds(cmd *cobra.Command, args []string) error {
	box := newBox(cmd, "KIND", "DESCRIPTION")
	for _, k := range presets.Kinds() {
		box.AppendRow(table.Row{k.Name, k.Description})
	}
	box.Render()
	return nil
}
