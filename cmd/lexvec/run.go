package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/viant/lexvec"
	"github.com/viant/lexvec/config"
	"github.com/viant/lexvec/embedding"
	"github.com/viant/lexvec/similarity"
)

const usage = `usage: lexvec [-config file] [-store type] [-path path] [-index type] <command> [flags] args

commands:
  get <query>...                                print the embedding of each query
  similar [-n N] [-metric m] [-lower] <query>   print nearest tokens with distances
  embset  [-n N] [-metric m] [-lower] <query>   print nearest tokens with vectors`

var errUsage = errors.New(usage)

type embeddingJSON struct {
	Name     string    `json:"name"`
	Vector   []float32 `json:"vector,omitempty"`
	Distance *float64  `json:"distance,omitempty"`
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("lexvec", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	cfgPath := global.String("config", "", "path to YAML config file")
	storeType := global.String("store", "", "store type: kvfile, sqlite or redis")
	storePath := global.String("path", "", "store path (kvfile or sqlite)")
	indexType := global.String("index", "", "ranking index: bruteforce or sqlite")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := loadConfig(*cfgPath, *storeType, *storePath, *indexType)
	if err != nil {
		return err
	}
	lang, err := lexvec.Load(ctx, cfg)
	if err != nil {
		return err
	}
	defer lang.Close()

	cmd, cmdArgs := rest[0], rest[1:]
	enc := json.NewEncoder(out)
	switch cmd {
	case "get":
		return runGet(lang, cmdArgs, enc)
	case "similar", "embset":
		return runSimilar(lang, cfg, cmd, cmdArgs, enc)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func loadConfig(path, storeType, storePath, indexType string) (*config.Config, error) {
	cfg, err := config.Read(path)
	if err != nil {
		return nil, err
	}
	if storeType != "" {
		cfg.Store.Type = storeType
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if indexType != "" {
		cfg.Similarity.Index = indexType
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGet(lang *lexvec.Language, args []string, enc *json.Encoder) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, q := range args {
		e, err := lang.Get(q)
		if err != nil {
			return err
		}
		if err := enc.Encode(embeddingJSON{Name: e.Name, Vector: e.Vector}); err != nil {
			return err
		}
	}
	return nil
}

func runSimilar(lang *lexvec.Language, cfg *config.Config, cmd string, args []string, enc *json.Encoder) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := fs.Int("n", cfg.Similarity.N, "number of results")
	metricName := fs.String("metric", cfg.Similarity.Metric, "distance metric")
	lower := fs.Bool("lower", cfg.Similarity.Lower, "only lowercase candidates")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return errUsage
	}
	query := strings.Join(fs.Args(), " ")
	opts := []similarity.CallOption{
		similarity.WithN(*n),
		similarity.WithMetric(*metricName),
		similarity.WithLower(*lower),
	}

	if cmd == "embset" {
		set, err := lang.EmbsetSimilar(query, opts...)
		if err != nil {
			return err
		}
		return encodeSet(set, enc)
	}
	scored, err := lang.ScoreSimilar(query, opts...)
	if err != nil {
		return err
	}
	for _, s := range scored {
		d := s.Distance
		if err := enc.Encode(embeddingJSON{Name: s.Name, Distance: &d}); err != nil {
			return err
		}
	}
	return nil
}

func encodeSet(set *embedding.Set, enc *json.Encoder) error {
	for _, e := range set.Embeddings() {
		if err := enc.Encode(embeddingJSON{Name: e.Name, Vector: e.Vector}); err != nil {
			return err
		}
	}
	return nil
}
