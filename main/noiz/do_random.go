package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/machbase/neo-noise/mods"
	"github.com/machbase/neo-noise/mods/rng"
	"github.com/spf13/cobra"
)

func newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random [flags]",
		Short: "Print raw values of the hash rng",
		RunE:  doRandom,
	}
	cmd.Flags().Uint32P("seed", "s", 0, "`<Seed>`")
	cmd.Flags().Uint32("start", 0, "`<Input>` of the first value")
	cmd.Flags().IntP("count", "n", 16, "`<N>` values to print")
	cmd.Flags().Bool("reseed", false, "reseed between values instead of advancing the input")
	return cmd
}

func doRandom(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	seed, _ := flags.GetUint32("seed")
	start, _ := flags.GetUint32("start")
	count, _ := flags.GetInt("count")
	reseed, _ := flags.GetBool("reseed")
	if count < 0 {
		return fmt.Errorf("invalid count %d", count)
	}

	ctx := rng.NewContext(seed)
	box := newBox(cmd, "SEED", "INPUT", "U32", "UNORM", "SNORM")
	for i := 0; i < count; i++ {
		r := ctx.Rng()
		input := start + uint32(i)
		if reseed {
			input = start
		}
		box.AppendRow(table.Row{
			uint32(r),
			input,
			fmt.Sprintf("0x%08x", r.RandU32(input)),
			fmt.Sprintf("%.6f", r.RandUNorm(input)),
			fmt.Sprintf("%+.6f", r.RandSNorm(input)),
		})
		if reseed {
			ctx.ReSeed()
		}
	}
	box.Render()
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := mods.GetVersion()
			box := newBox(cmd, "VERSION", "GIT", "BUILT", "GO")
			box.AppendRow(table.Row{v.String(), v.GitSHA, mods.BuildTimestamp(), mods.BuildCompiler()})
			box.Render()
			return nil
		},
	}
}
