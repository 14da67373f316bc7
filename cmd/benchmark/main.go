package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/neocomp/store"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "time propagation through w chains of h derived properties",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "write a cpu profile to this file",
				Value: "default.pgo",
			},
			&cli.IntFlag{
				Name:  "iters",
				Usage: "writes per grid cell",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: "largest width and height",
				Value: 1_000,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String("profile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int("iters"))
	var sizes []int
	for n := 1; n <= int(cmd.Int("max")); n *= 10 {
		sizes = append(sizes, n)
	}

	log.Printf("warming up")
	if err := benchmark("Explicit effects", sizes, iters, explicitChain); err != nil {
		return err
	}
	return benchmark("Tracked effects", sizes, iters, trackedChain)
}

// chain builds h derived properties on top of src and returns the last one.
type chain func(s *store.Store, src *store.Signal[int], h int) (store.Ref, error)

func explicitChain(s *store.Store, src *store.Signal[int], h int) (store.Ref, error) {
	var last store.Ref = src
	for range h {
		prev := last.ID()
		next, err := store.ComputedOf(s, []store.Ref{prev}, func() int {
			v, _ := s.Peek(prev)
			return v.(int) + 1
		})
		if err != nil {
			return nil, err
		}
		last = next
	}
	return last, nil
}

func trackedChain(s *store.Store, src *store.Signal[int], h int) (store.Ref, error) {
	var last store.Ref = src
	for range h {
		prev := last.ID()
		next, err := store.Computed(s, func() int {
			v, _ := s.Get(prev)
			return v.(int) + 1
		})
		if err != nil {
			return nil, err
		}
		last = next
	}
	return last, nil
}

func benchmark(title string, sizes []int, iters int, build chain) error {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "runs"})

	for _, w := range sizes {
		for _, h := range sizes {
			if w*h > 100_000 {
				continue
			}
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			s := store.New(nil)
			src := store.NewSignal(s, 1)
			for range w {
				last, err := build(s, src, h)
				if err != nil {
					return err
				}
				if _, err := s.Effect([]store.Ref{last}, nil, func() error { return nil }); err != nil {
					return err
				}
			}

			before := s.Dispatcher().Stats().Runs
			for range iters {
				start := time.Now()
				if err := src.Set(src.Peek() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}
			runs := s.Dispatcher().Stats().Runs - before

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
				humanize.Comma(runs),
			})
		}
	}

	tbl.Render()
	return nil
}
