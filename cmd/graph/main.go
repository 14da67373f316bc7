package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/delaneyj/neocomp/cmd/graph/templates"
	"github.com/delaneyj/neocomp/store"
	"github.com/urfave/cli/v3"
)

const (
	presetKey = "preset"
	widthKey  = "width"
	heightKey = "height"
	seedKey   = "seed"
	outKey    = "out"
	dumpKey   = "dump"
)

func main() {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)

	cmd := &cli.Command{
		Name:  "graph",
		Usage: "Render the dependency graph of a sample store as Graphviz DOT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  presetKey,
				Usage: "graph to build, one of " + strings.Join(names, ", "),
				Value: "diamond",
			},
			&cli.UintFlag{
				Name:  widthKey,
				Usage: "number of chains or nodes per layer",
				Value: 3,
			},
			&cli.UintFlag{
				Name:  heightKey,
				Usage: "chain length or number of layers",
				Value: 3,
			},
			&cli.IntFlag{
				Name:  seedKey,
				Usage: "random seed for the layers preset",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "write the DOT file here instead of stdout",
			},
			&cli.BoolFlag{
				Name:  dumpKey,
				Usage: "print property and unit tables to stderr",
			},
		},
		Action: render,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func render(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	name := cmd.String(presetKey)
	build, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}

	s := store.New(nil)
	random := rand.New(rand.NewSource(cmd.Int(seedKey)))
	if err := build(s, int(cmd.Uint(widthKey)), int(cmd.Uint(heightKey)), random); err != nil {
		return err
	}
	log.Printf("Built %q with %d properties and %d units in %v", name, s.Len(), len(s.Dispatcher().Units()), time.Since(start))

	if cmd.Bool(dumpKey) {
		s.Dump(os.Stderr)
		s.Dispatcher().Dump(os.Stderr)
	}

	var w io.Writer = os.Stdout
	if path := cmd.String(outKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	templates.WriteDOT(w, toGraph(name, s))
	return nil
}
