package main

import (
	"fmt"
	"os"

	"github.com/linxisa/pycircuit-go/examples"
	"github.com/linxisa/pycircuit-go/pkg/pycircuit"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags]",
	Short: "specialize the demo catalog and emit its textual IR.",
	Long:  "Specializes the built-in demo components into a design unit and writes its MLIR-compatible textual IR to stdout or --output.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Debug("specializing demo design")

		d, err := examples.BuildDemoDesign()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error building design: %s\n", err)
			os.Exit(1)
		}

		out := os.Stdout
		output := GetString(cmd, "output")

		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error opening %s: %s\n", output, err)
				os.Exit(1)
			}

			defer f.Close()

			if err := pycircuit.EmitIR(f, d); err != nil {
				fmt.Fprintf(os.Stderr, "error emitting IR: %s\n", err)
				os.Exit(1)
			}

			return
		}

		if term.IsTerminal(int(out.Fd())) {
			log.Infof("writing %d module(s), top=%q", len(d.Modules()), d.Top())
		}

		if err := pycircuit.EmitIR(out, d); err != nil {
			fmt.Fprintf(os.Stderr, "error emitting IR: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)
	emitCmd.Flags().StringP("output", "o", "", "write IR to this file instead of stdout")
}
