package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/dataset"
	"github.com/fitlens/backend/internal/infrastructure/forest"
	"github.com/fitlens/backend/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the trainer command. Flags may also be set through
// FITLENS_* environment variables, e.g. FITLENS_MODELS_DIR for --out.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FITLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := forest.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "trainer",
		Short: "Train the per-category item classifiers",
		Long: `Reads a labeled CSV (gender,style,color,price_tier,top,bottom,outer),
fits one classifier per category, reports train/test accuracy and writes
<out>/<category>.json for the server to load.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.String("data", "data/clothing_samples.csv", "labeled training CSV")
	flags.String("out", "./models", "directory for the model artifacts")
	flags.Int("trees", defaults.NumTrees, "number of trees per forest")
	flags.Int64("seed", defaults.Seed, "random seed")
	flags.Int("max-depth", defaults.MaxDepth, "maximum tree depth (0 = unlimited)")
	flags.Float64("test-size", 0.2, "fraction held out for the accuracy report (0 disables)")

	bindings := map[string]string{
		"training.data":      "data",
		"models.dir":         "out",
		"training.trees":     "trees",
		"training.seed":      "seed",
		"training.max_depth": "max-depth",
		"training.test_size": "test-size",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind --%s: %v", name, err))
		}
	}

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	dataPath := v.GetString("training.data")
	outDir := v.GetString("models.dir")

	targets := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		targets[i] = string(c)
	}

	ds, err := dataset.ReadFile(dataPath, domain.FeatureColumns, targets)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	log.Printf("[TRAIN] Loaded %d samples from %s", ds.Len(), dataPath)

	cfg := forest.DefaultConfig()
	cfg.NumTrees = v.GetInt("training.trees")
	cfg.Seed = v.GetInt64("training.seed")
	cfg.MaxDepth = v.GetInt("training.max_depth")

	trainer := usecase.NewTrainer(usecase.TrainerConfig{
		Forest:   cfg,
		TestSize: v.GetFloat64("training.test_size"),
	})

	reports, err := trainer.Train(cmd.Context(), ds, outDir)
	for _, r := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s train=%.3f test=%.3f samples=%d classes=%s -> %s\n",
			r.Category, r.TrainScore, r.TestScore, r.Samples, strings.Join(r.Classes, ","), r.ArtifactPath)
	}
	return err
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
