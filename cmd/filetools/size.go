package main

import (
	"fmt"
	"strconv"

	"github.com/authenticvision/filetools/bsize"
	"github.com/spf13/cobra"
)

func (a *app) newSizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Convert between byte counts and sizes like \"4.0 M\"",
	}
	cmd.AddCommand(a.newSizeFormatCommand(), a.newSizeParseCommand())
	return cmd
}

func (a *app) newSizeFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format COUNT...",
		Short: "Print byte counts in binary units",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := a.cfg.Locale.Tag()
			for _, arg := range args {
				n, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("byte count %q: %w", arg, err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), bsize.Format(bsize.Bytes(n), tag))
			}
			return nil
		},
	}
}

func (a *app) newSizeParseCommand() *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "parse SIZE...",
		Short: "Print sizes like 4M or 1024B as byte counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := bsize.Parse
			if lenient {
				parse = bsize.ParseLenient
			}
			for _, arg := range args {
				n, err := parse(arg)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), int64(n))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "also accept SI and IEC spellings such as 10MB or 1.5GiB")
	return cmd
}
