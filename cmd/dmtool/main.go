// Command dmtool inspects and converts hierarchical science data
// containers: container store files, NetCDF files, and JSON-headed ASCII
// files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-datamodel/datamodel"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "dmtool",
		Short: "dmtool - inspect and convert hierarchical science data containers",
		Long: `dmtool works with self-describing hierarchical data containers:
trees of attribute-carrying groups and labelled arrays.

Use subcommands to perform different operations:
  - tree: render the contents of a container store file as a tree
  - flatten: collapse a nested container store file to a single level
  - header: parse the JSON metadata header of an ASCII data file
  - convert: convert a NetCDF file to a container store file`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				datamodel.SetLogLevel(datamodel.LogLevelInfo)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable informational diagnostics")

	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newFlattenCmd())
	rootCmd.AddCommand(newHeaderCmd())
	rootCmd.AddCommand(newConvertCmd())
	return rootCmd
}

func newTreeCmd() *cobra.Command {
	var attrs bool

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Render the contents of a container store file as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := datamodel.FromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sd.Tree(datamodel.TreeOptions{Attrs: attrs}))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&attrs, "attrs", "a", false, "also list attribute names")
	return cmd
}

func newFlattenCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "flatten IN OUT",
		Short: "Collapse a nested container store file to a single level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := datamodel.FromFile(args[0])
			if err != nil {
				return err
			}
			sd.Flatten()
			return datamodel.ToFile(args[1], sd, datamodel.WithOverwrite(overwrite))
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "allow replacing an existing output file")
	return cmd
}

func newHeaderCmd() *cobra.Command {
	var attrs bool

	cmd := &cobra.Command{
		Use:   "header FILE",
		Short: "Parse the JSON metadata header of an ASCII data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := datamodel.ReadJSONMetadata(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sd.Tree(datamodel.TreeOptions{Attrs: attrs}))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&attrs, "attrs", "a", false, "also list attribute names")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a NetCDF file to a container store file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sd, err := datamodel.FromCDF(args[0])
			if err != nil {
				return err
			}
			return datamodel.ToFile(args[1], sd, datamodel.WithOverwrite(overwrite))
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "allow replacing an existing output file")
	return cmd
}
