package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/neocomp/dispatch"
	"github.com/delaneyj/neocomp/store"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

type layersTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int     // width of dependency graph to construct
	totalLayers    int     // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes with declared inputs, the rest are tracked
	nSources       int     // number of sources read by each node
	readFraction   float64 // fraction of the last layer read after each write
	iterations     int64
}

var perfTestCfgs = []layersTestConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     600000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    10,
		staticFraction: 0.75,
		nSources:       6,
		readFraction:   0.2,
		iterations:     15000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    12,
		staticFraction: 0.95,
		nSources:       4,
		readFraction:   1,
		iterations:     7000,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    5,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     3000,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    500,
		staticFraction: 1,
		nSources:       3,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    15,
		staticFraction: 0.5,
		nSources:       6,
		readFraction:   1,
		iterations:     2000,
	},
}

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_layers",
		Usage: "run layered random graphs through the update dispatcher",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "repeats",
				Usage: "timed runs per config, the best one is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  "only",
				Usage: "run the config with this name only",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
	stats    dispatch.Stats
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting layers benchmark, please wait...")
	defer log.Print("Finished layers benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time",
		"updateRate", "passes", "runs", "title",
	})

	testRepeats := int(cmd.Int("repeats"))
	only := cmd.String("only")
	for _, cfg := range perfTestCfgs {
		if only != "" && cfg.name != only {
			continue
		}
		log.Printf("Running '%s' config", cfg.name)

		best := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			counter := new(int64)
			graph, err := makeGraph(&cfg, counter)
			if err != nil {
				return err
			}
			*counter = 0
			before := graph.store.Dispatcher().Stats()

			start := time.Now()
			sum, err := runGraph(graph, cfg.iterations, cfg.readFraction)
			if err != nil {
				return err
			}
			duration := time.Since(start)

			if duration < best.duration {
				after := graph.store.Dispatcher().Stats()
				best = &results{
					sum:      sum,
					count:    *counter,
					duration: duration,
					stats: dispatch.Stats{
						Passes:  after.Passes - before.Passes,
						Runs:    after.Runs - before.Runs,
						Splices: after.Splices - before.Splices,
					},
				}
			}
		}

		log.Printf("'%s' best run: sum %d, %s node runs", cfg.name, best.sum, humanize.Comma(best.count))
		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(updateRate)),
			humanize.Comma(best.stats.Passes),
			humanize.Comma(best.stats.Runs),
			title(&cfg),
		})
	}
	table.Render()
	return nil
}

func title(cfg *layersTestConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" tracked")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type layersGraph struct {
	store   *store.Store
	sources []*store.Signal[int]
	layers  [][]*store.ReadOnlySignal[int]
}

func makeGraph(cfg *layersTestConfig, counter *int64) (*layersGraph, error) {
	s := store.New(nil)
	sources := make([]*store.Signal[int], cfg.width)
	prevRow := make([]store.Ref, cfg.width)
	for i := range sources {
		sources[i] = store.NewSignal(s, i)
		prevRow[i] = sources[i]
	}

	random := rand.New(rand.NewSource(0))
	graph := &layersGraph{store: s, sources: sources}
	for l := 0; l < cfg.totalLayers-1; l++ {
		row, err := makeRow(s, prevRow, cfg, counter, random)
		if err != nil {
			return nil, err
		}
		graph.layers = append(graph.layers, row)
		for i, node := range row {
			prevRow[i] = node
		}
	}
	return graph, nil
}

// makeRow derives one layer from the previous one. Nodes with declared inputs
// read every source; tracked nodes skip one source depending on the first
// source's value at registration.
func makeRow(s *store.Store, sources []store.Ref, cfg *layersTestConfig, counter *int64, random *rand.Rand) ([]*store.ReadOnlySignal[int], error) {
	row := make([]*store.ReadOnlySignal[int], len(sources))
	read := func(ref store.Ref) int {
		v, _ := s.Get(ref.ID())
		return v.(int)
	}

	for myDex := range sources {
		mySources := make([]store.Ref, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < cfg.nSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		var (
			node *store.ReadOnlySignal[int]
			err  error
		)
		if random.Float64() < cfg.staticFraction {
			node, err = store.ComputedOf(s, mySources, func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += read(source)
				}
				return sum
			})
		} else {
			first, tail := mySources[0], mySources[1:]
			node, err = store.Computed(s, func() int {
				*counter++
				sum := read(first)
				shouldDrop := sum&0x1 > 0
				dropDex := 0
				if len(tail) > 0 {
					dropDex = sum % len(tail)
				}
				for i := range tail {
					if shouldDrop && i == dropDex {
						continue
					}
					sum += read(tail[i])
				}
				return sum
			})
		}
		if err != nil {
			return nil, err
		}
		row[myDex] = node
	}
	return row, nil
}

// runGraph writes one source per iteration and reads some or all of the
// leaves, returning the sum of the leaves read.
func runGraph(graph *layersGraph, iterations int64, readFraction float64) (int, error) {
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < int(iterations); i++ {
		sourceDex := i % len(graph.sources)
		if err := graph.sources[sourceDex].Set(i + sourceDex); err != nil {
			return 0, err
		}
		for _, leaf := range readLeaves {
			leaf.Peek()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Peek()
	}
	return sum, nil
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
