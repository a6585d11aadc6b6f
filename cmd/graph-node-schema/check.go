package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/hybridx-exchange/graph-node/manifest"
	"github.com/hybridx-exchange/graph-node/schema"
	"github.com/hybridx-exchange/graph-node/trace/noop"
	ottracer "github.com/hybridx-exchange/graph-node/trace/opentracing"
	"github.com/hybridx-exchange/graph-node/trace/tracer"
)

var errSchemaInvalid = errors.New("schema contains validation errors")

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a subgraph schema and print its derived structures",
		ArgsUsage: "[schema.graphql]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "read the schema location from a subgraph.yaml manifest",
			},
			&cli.StringFlag{
				Name:  "deployment",
				Usage: "deployment id to attribute the schema to",
				Value: "local",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "report spans to the tracer configured via JAEGER_* environment variables",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		Action: runCheck,
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	var t tracer.Tracer = noop.Tracer{}
	if cmd.Bool("trace") {
		closer, err := setupTracer()
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer closer()
			t = ottracer.Tracer{}
		}
	}

	path := cmd.Args().First()
	if manifestPath := cmd.String("manifest"); manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return err
		}
		path = m.SchemaPath()
		logger.Debug("schema location from manifest",
			zap.String("manifest", manifestPath),
			zap.String("schema", path))
	}
	if path == "" {
		return fmt.Errorf("a schema file or --manifest is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	deployment := cmd.String("deployment")
	_, finish := t.TraceValidation(ctx, deployment)
	s, err := schema.Parse(string(raw), schema.DeploymentID(deployment))
	if err != nil {
		finish([]error{err})
		var verrs schema.ValidationErrors
		if errors.As(err, &verrs) {
			for _, verr := range verrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", verr.Code, verr.Message)
			}
			return fmt.Errorf("%w (%d)", errSchemaInvalid, len(verrs))
		}
		return err
	}
	finish(nil)

	printSummary(s)
	return nil
}

func printSummary(s *schema.Schema) {
	fmt.Printf("schema %s is valid\n", s.ID)

	interfaces := make([]string, 0, len(s.TypesForInterface))
	for name := range s.TypesForInterface {
		interfaces = append(interfaces, name)
	}
	sort.Strings(interfaces)
	for _, name := range interfaces {
		impls := make([]string, 0, len(s.TypesForInterface[name]))
		for _, def := range s.TypesForInterface[name] {
			impls = append(impls, def.Name)
		}
		fmt.Printf("interface %s: implemented by %s\n", name, strings.Join(impls, ", "))
	}

	for _, def := range s.FulltextDefinitions() {
		fields := make([]string, 0, len(def.IncludedFields))
		for field := range def.IncludedFields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		fmt.Printf("fulltext index %s (%s): %s\n", def.Name, def.Algorithm, strings.Join(fields, ", "))
	}

	for _, imp := range s.Imports() {
		names := make([]string, 0, len(imp.Types))
		for _, t := range imp.Types {
			if t.Explicit {
				names = append(names, fmt.Sprintf("%s as %s", t.Name, t.Alias))
			} else {
				names = append(names, t.Name)
			}
		}
		fmt.Printf("imports %s from %s\n", strings.Join(names, ", "), imp.From)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// setupTracer installs a jaeger-backed global tracer configured from the
// environment, as the serving process does.
func setupTracer() (func(), error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "graph-node-schema"
	}
	jt, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(jt)
	return func() { closer.Close() }, nil
}
