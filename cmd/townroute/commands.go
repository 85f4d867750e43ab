package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/roadgraph/config"
	"github.com/katalvlaran/roadgraph/core"
	"github.com/katalvlaran/roadgraph/loader"
	"github.com/katalvlaran/roadgraph/logging"
	"github.com/katalvlaran/roadgraph/persist"
	"github.com/katalvlaran/roadgraph/roadmap"
)

var (
	errNoNeo4j   = errors.New("neo4j.uri is not configured")
	errNoRoadMap = errors.New("no road map: set --data, data.file or ROADGRAPH_DATA_FILE")
)

// annotationMapOptional marks commands that run without a road map file.
const annotationMapOptional = "townroute/map-optional"

// app is the state shared by every subcommand once the root pre-run has
// loaded configuration and the road map.
type app struct {
	configPath  string
	dataFile    string
	metricsPath string

	// newClient opens the Neo4j connection for export and import.
	newClient func(ctx context.Context, opts persist.Options) (persist.Client, error)

	cfg      config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	manager  *roadmap.Manager
}

func newApp() *app {
	return &app{newClient: persist.NewNeo4jClient}
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "townroute",
		Short:         "Query shortest routes between towns on a road map",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.writeMetrics()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.dataFile, "data", "", "road map file (overrides data.file)")
	root.PersistentFlags().StringVar(&a.metricsPath, "metrics", "",
		"write Prometheus metrics in text format to this file after the command")

	root.AddCommand(
		a.townsCmd(),
		a.roadsCmd(),
		a.pathCmd(),
		a.reachCmd(),
		a.exportCmd(),
		a.importCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataFile != "" {
		cfg.Data.File = a.dataFile
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging, cmd.ErrOrStderr())
	a.registry = prometheus.NewRegistry()
	a.manager = roadmap.NewManager(
		roadmap.WithLogger(a.log),
		roadmap.WithMetrics(roadmap.NewMetrics(a.registry)),
	)

	if cfg.Data.File == "" {
		if cmd.Annotations[annotationMapOptional] != "" {
			return nil
		}
		return errNoRoadMap
	}
	if _, err := a.manager.PopulateFile(cmd.Context(), cfg.Data.File); err != nil {
		return err
	}

	return nil
}

func (a *app) writeMetrics() error {
	if a.metricsPath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsPath, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	return nil
}

func (a *app) townsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "towns",
		Short: "List every town",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printLines(cmd.OutOrStdout(), a.manager.AllTowns())
		},
	}
}

func (a *app) roadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roads",
		Short: "List every road",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printLines(cmd.OutOrStdout(), a.manager.AllRoads())
		},
	}
}

func (a *app) pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Print the shortest route between two towns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := a.manager.GetPath(args[0], args[1])
			if len(steps) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "no route from %s to %s\n", args[0], args[1])
				return err
			}

			return printLines(cmd.OutOrStdout(), steps)
		},
	}
}

func (a *app) reachCmd() *cobra.Command {
	var maxHops int
	cmd := &cobra.Command{
		Use:   "reach <town>",
		Short: "List towns reachable from a town",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.manager.ContainsTown(args[0]) {
				return fmt.Errorf("%w: %s", core.ErrLocationNotFound, args[0])
			}

			return printLines(cmd.OutOrStdout(), a.manager.ReachableTowns(args[0], maxHops))
		},
	}
	cmd.Flags().IntVar(&maxHops, "max-hops", 0, "limit the number of roads travelled (0 means unlimited)")

	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the road map to Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.openClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			exp := persist.NewExporter(client, a.log)
			var sum persist.ExportSummary
			if err := a.manager.View(func(g *core.Graph) error {
				sum, err = exp.Export(ctx, g)
				return err
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d towns and %d roads\n", sum.Towns, sum.Roads)

			return err
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Read the road map from Neo4j and print it in road map file format",
		Long: `Reads every town and road stored in Neo4j, merges them into the road map
loaded with --data (if any) and prints the result one road per line, in the
format --data accepts. Towns without roads cannot be written in that format.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationMapOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := a.openClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			if _, err := persist.NewExporter(client, a.log).Import(ctx, a.manager); err != nil {
				return err
			}

			recs := a.manager.Records()
			lines := make([]string, 0, len(recs))
			for _, rec := range recs {
				lines = append(lines, loader.FormatLine(rec))
			}
			if out == "" {
				return printLines(cmd.OutOrStdout(), lines)
			}

			return writeLines(out, lines)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the road map to this file instead of stdout")

	return cmd
}

func (a *app) openClient(ctx context.Context) (persist.Client, error) {
	nc := a.cfg.Neo4j
	if nc.URI == "" {
		return nil, errNoNeo4j
	}

	return a.newClient(ctx, persist.Options{
		URI:            nc.URI,
		Database:       nc.Database,
		Username:       nc.Username,
		Password:       nc.Password,
		MaxConnections: nc.MaxConnections,
	})
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := printLines(f, lines); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

func printLines(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))

	return err
}
