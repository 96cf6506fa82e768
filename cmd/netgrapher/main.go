// Command netgrapher ingests network-diagnostic dumps (ARP tables,
// traceroutes, routing tables) and incrementally grows a persisted graph
// of the discovered topology.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"netgrapher/internal/classify"
	"netgrapher/internal/codec"
	"netgrapher/internal/config"
	"netgrapher/internal/domain"
	"netgrapher/internal/engine"
	"netgrapher/internal/extractor"
	"netgrapher/internal/render"
	"netgrapher/internal/server"
	"netgrapher/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		debug          = flag.Bool("d", false, "enable debug logging")
		centreIP       = flag.String("i", "", "IP address where the dump was taken (default: guessed from file content where possible)")
		savefile       = flag.String("s", "", "base name for the persisted graph (default from config, \"networkmap\")")
		format         = flag.String("f", "", "savefile format: json, yaml, dot, graphml or sqlite (default from config, \"json\")")
		ignoreSavefile = flag.Bool("N", false, "don't read the savefile; start from an empty graph")
		dryRun         = flag.Bool("n", false, "dry run: merge but don't persist the result")
		dumpType       = flag.String("t", "", "dump type override: arp, route or traceroute (default: guessed from file content)")
		dumpOS         = flag.String("o", "", "operating system override: linux, windows or openbsd (default: guessed)")
		renderOut      = flag.String("render", "", "write a PNG of the saved graph to this path (requires graphviz)")
		layout         = flag.String("layout", render.DefaultLayout, "graphviz layout program used with -render")
		serve          = flag.Bool("serve", false, "run a local preview server showing the saved graph")
		configPath     = flag.String("config", "", "config file path (default: search the usual locations)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] dumpfile\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "netgrapher: %v\n", err)
		return 1
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	} else if l, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		level = l
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if cfgPath != "" {
		log.Debug().Str("config", cfgPath).Msg("config loaded")
	}
	if *savefile == "" {
		*savefile = cfg.Savefile
	}
	if *format == "" {
		*format = cfg.Format
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	dumpfile := flag.Arg(0)
	if _, err := os.Stat(dumpfile); err != nil {
		log.Error().Str("file", dumpfile).Msg("dump file does not exist")
		return 2
	}

	st, err := openStore(*savefile, *format, log)
	if err != nil {
		log.Error().Err(err).Msg("cannot open graph store")
		return 1
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var graph *domain.Graph
	if *ignoreSavefile {
		log.Debug().Msg("ignoring savefile")
		graph = domain.NewGraph()
	} else {
		graph, err = st.Load(ctx)
		if err != nil {
			log.Error().Err(err).Msg("cannot load saved graph")
			return 1
		}
		log.Debug().
			Int("nodes", len(graph.Nodes)).
			Int("edges", len(graph.Edges)).
			Msg("graph loaded")
	}

	pipeline := engine.New(classify.NewClassifier(), extractor.DefaultRegistry(), log)
	opts := engine.Options{
		CentreIP: *centreIP,
		Type:     domain.DumpType(strings.ToLower(*dumpType)),
		OS:       domain.DumpOS(strings.ToLower(*dumpOS)),
	}
	if err := pipeline.Ingest(graph, dumpfile, opts); err != nil {
		logDomainError(log, err)
		return 1
	}

	if *dryRun {
		log.Info().Msg("dry-run mode selected, not writing the savefile")
	} else if err := st.Save(ctx, graph); err != nil {
		log.Error().Err(err).Msg("merge succeeded but the graph was not persisted; re-run against the same dump to retry")
		return 1
	}

	if *renderOut != "" && !*dryRun {
		if err := render.Render(ctx, graph, *renderOut, *layout); err != nil {
			// the savefile is still good, only the picture is missing
			log.Error().Err(err).Msg("rendering failed; try a graphviz program manually")
		} else {
			log.Info().Str("image", *renderOut).Msg("graph image saved")
		}
	}

	log.Info().Msg("processing complete")

	if *serve && !*dryRun {
		if err := server.New(st, log).ListenAndServe(ctx, cfg.Serve.Addr); err != nil {
			log.Error().Err(err).Msg("preview server failed")
			return 1
		}
	}

	return 0
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// openStore picks the persistence backend: sqlite keeps the graph in a
// database, everything else is a codec-encoded file named
// <base>.<format>.
func openStore(base, format string, log zerolog.Logger) (store.Store, error) {
	if format == "sqlite" {
		return store.NewSQLiteStore(base + ".sqlite")
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(base+"."+c.Format(), c, log), nil
}

// logDomainError reports a failed invocation with enough context for the
// operator to retry with corrected flags
func logDomainError(log zerolog.Logger, err error) {
	var (
		classErr       *domain.ClassificationError
		validationErr  *domain.ValidationError
		unsupportedErr *domain.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &classErr):
		log.Error().Err(err).Msg("could not classify the dump; supply -t and -o explicitly")
	case errors.As(err, &validationErr):
		log.Error().Err(err).Msg("dump validation failed; nothing was merged")
	case errors.As(err, &unsupportedErr):
		log.Error().Err(err).Msg("unsupported dump format")
	default:
		log.Error().Err(err).Msg("processing failed")
	}
}
