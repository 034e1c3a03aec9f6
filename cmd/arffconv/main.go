// Command arffconv converts the ham/spam zip corpora under dataset/ZipFiles
// into sparse ARFF files under dataset/ARFF.
//
// Without arguments it converts the enron1, enron4 and hw2 families. A YAML
// manifest (-config) can point input and output at S3 or MinIO, select other
// families, and enable compression, sidecars and parallelism.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hupe1980/arffconv"
	"github.com/hupe1980/arffconv/arff"
	"github.com/hupe1980/arffconv/blobstore"
	"github.com/hupe1980/arffconv/codec"
	"github.com/hupe1980/arffconv/internal/config"
	"github.com/hupe1980/arffconv/resource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("arffconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path of a YAML manifest")
	discover := fs.Bool("discover", false, "convert every <family>_train.zip/<family>_test.zip pair in the input store")
	reportPath := fs.String("report", "", "write a JSON report of the run to this file")
	verbose := fs.Bool("v", false, "log every stage")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "arffconv: %v\n", err)
			return 1
		}
	}
	if *discover {
		cfg.Discover = true
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	if *verbose {
		level = slog.LevelDebug
	}
	logger := arffconv.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	conv, in, err := newConverter(ctx, cfg, logger)
	if err != nil {
		logger.Error("setup failed", "error", err)
		return 1
	}

	families, err := selectFamilies(ctx, cfg, in)
	if err != nil {
		logger.Error("family discovery failed", "error", err)
		return 1
	}

	report, runErr := conv.Run(ctx, families...)

	if cs, ok := in.(*blobstore.CachingStore); ok {
		hits, misses := cs.Stats()
		logger.Debug("block cache", "hits", hits, "misses", misses)
	}

	if *reportPath != "" && report != nil {
		if err := writeReport(ctx, *reportPath, cfg, report); err != nil {
			logger.Error("report write failed", "path", *reportPath, "error", err)
			return 1
		}
	}

	if runErr != nil {
		logger.Error("conversion aborted", "error", runErr)
		return 1
	}

	fmt.Fprintf(stdout, "Converted Success! Check %s folder!\n", location(cfg.Output))

	if report.Failed() {
		logger.Warn("conversion finished with failures", "failures", len(report.Failures()))
		return 1
	}
	return 0
}

func newConverter(ctx context.Context, cfg *config.Config, logger *arffconv.Logger) (*arffconv.Converter, blobstore.BlobStore, error) {
	var rc *resource.Controller
	if r := cfg.Resources; r != (config.ResourcesConfig{}) {
		rc = resource.NewController(resource.Config{
			MemoryLimitBytes:   r.MemoryLimitBytes,
			MaxWorkers:         r.MaxWorkers,
			IOLimitBytesPerSec: r.IOLimitBytesPerSec,
		})
	}

	in, err := openInput(ctx, cfg.Input, rc)
	if err != nil {
		return nil, nil, fmt.Errorf("input: %w", err)
	}
	out, err := openOutput(ctx, cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("output: %w", err)
	}

	policy, err := arffconv.ParseErrorPolicy(cfg.ErrorPolicy)
	if err != nil {
		return nil, nil, err
	}
	compression, err := arff.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, nil, err
	}
	c, ok := codec.ByName(cfg.Codec)
	if !ok {
		return nil, nil, fmt.Errorf("unknown codec %q", cfg.Codec)
	}

	opts := []arffconv.Option{
		arffconv.WithLogger(logger),
		arffconv.WithErrorPolicy(policy),
		arffconv.WithParallelism(cfg.Parallelism),
		arffconv.WithCompression(compression),
		arffconv.WithVocabularySidecar(cfg.Sidecar),
		arffconv.WithCodec(c),
		arffconv.WithResourceController(rc),
	}
	if cfg.Comment != "" {
		opts = append(opts, arffconv.WithComment(cfg.Comment))
	}

	conv, err := arffconv.New(in, out, opts...)
	if err != nil {
		return nil, nil, err
	}
	return conv, in, nil
}

func selectFamilies(ctx context.Context, cfg *config.Config, in blobstore.BlobStore) ([]arffconv.Family, error) {
	if cfg.Discover {
		return arffconv.DiscoverFamilies(ctx, in)
	}

	families := make([]arffconv.Family, 0, len(cfg.Families))
	for _, name := range cfg.Families {
		families = append(families, arffconv.NewFamily(name))
	}
	return families, nil
}

type runReport struct {
	Input    string             `json:"input"`
	Output   string             `json:"output"`
	Failed   bool               `json:"failed"`
	Results  []*arffconv.Result `json:"results"`
	Failures []arffconv.Failure `json:"failures"`
}

// writeReport replaces the file at path with the JSON report.
func writeReport(ctx context.Context, path string, cfg *config.Config, report *arffconv.Report) error {
	c, ok := codec.ByName(cfg.Codec)
	if !ok {
		c = codec.Default
	}

	data, err := c.Marshal(runReport{
		Input:    location(cfg.Input),
		Output:   location(cfg.Output),
		Failed:   report.Failed(),
		Results:  report.Results,
		Failures: report.Failures(),
	})
	if err != nil {
		return err
	}

	return blobstore.NewLocalStore(filepath.Dir(path)).Put(ctx, filepath.Base(path), data)
}
