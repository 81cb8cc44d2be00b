package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/reunion/internal/script"
	"github.com/papapumpkin/reunion/internal/ui"
)

var forestCmd = &cobra.Command{
	Use:   "forest <script.toml>",
	Short: "Print the minimum spanning forest of a script's weighted edges",
	Args:  cobra.ExactArgs(1),
	RunE:  runForest,
}

func init() {
	rootCmd.AddCommand(forestCmd)
}

func runForest(cmd *cobra.Command, args []string) error {
	printer := ui.New()

	s, err := script.Load(args[0])
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	if len(s.Edges) == 0 {
		return fmt.Errorf("%s: no [[edge]] entries", args[0])
	}

	g := s.Graph()
	printer.Info(fmt.Sprintf("%d node(s), %d edge(s), %d component(s)", g.Len(), len(s.Edges), len(g.Components())))
	printer.Forest(g.SpanningForest())
	return nil
}
