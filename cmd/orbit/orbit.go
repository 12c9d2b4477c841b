package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/mandel"
	"os"
	"strconv"
)

var (
	iterations int
	trace      bool
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orbit <real> <imag>",
		Short: "Report the escape behavior of a single point",
		Args:  cobra.ExactArgs(2),
		RunE:  runCmd,
	}

	cmd.Flags().IntVar(&iterations, "iterations", 500, "iteration cap")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every orbit point")

	return cmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	re, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing real part: %w", err)
	}

	im, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parsing imaginary part: %w", err)
	}

	c := complex(re, im)
	r := mandel.Evaluate(c, iterations, trace)

	if r.Escaped {
		fmt.Printf("%v escapes at iteration %d (smooth %.4f)\n", c, r.Iterations, mandel.SmoothIterations(r))
	} else {
		fmt.Printf("%v stays bounded through %d iterations\n", c, r.Iterations)
	}

	if trace {
		for i, z := range r.Orbit {
			fmt.Printf("z(%d) = %v\n", i, z)
		}
	}

	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
