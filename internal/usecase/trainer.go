package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/dataset"
	"github.com/fitlens/backend/internal/infrastructure/forest"
)

// TrainerConfig holds configuration for offline training
type TrainerConfig struct {
	Forest   forest.Config
	TestSize float64 // fraction held out for the accuracy report; 0 disables evaluation
}

// TrainingReport summarises the model trained for one category
type TrainingReport struct {
	Category     domain.Category `json:"category"`
	Samples      int             `json:"samples"`
	TrainSamples int             `json:"trainSamples"`
	TestSamples  int             `json:"testSamples"`
	TrainScore   float64         `json:"trainScore"`
	TestScore    float64         `json:"testScore"`
	Classes      []string        `json:"classes"`
	ArtifactPath string          `json:"artifactPath"`
}

// Trainer fits one pipeline per category from a labeled dataset
type Trainer struct {
	config TrainerConfig
}

// NewTrainer creates a trainer
func NewTrainer(config TrainerConfig) *Trainer {
	if config.Forest.NumTrees <= 0 {
		config.Forest = forest.DefaultConfig()
	}
	if config.TestSize < 0 || config.TestSize >= 1 {
		config.TestSize = 0
	}
	return &Trainer{config: config}
}

// Train evaluates each category on a held-out split, then refits on the full
// dataset and writes the artifact to outDir. Categories are trained independently.
func (t *Trainer) Train(ctx context.Context, ds *dataset.Dataset, outDir string) ([]TrainingReport, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, domain.ErrDatasetInvalid
	}

	trainIdx, testIdx := splitIndices(ds.Len(), t.config.TestSize, t.config.Forest.Seed)
	reports := make([]TrainingReport, 0, len(domain.Categories))

	for _, category := range domain.Categories {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		labels, ok := ds.Targets[string(category)]
		if !ok || len(labels) != ds.Len() {
			return reports, fmt.Errorf("%w: no labels for %s", domain.ErrDatasetInvalid, category)
		}

		report, err := t.trainCategory(category, ds, labels, trainIdx, testIdx, outDir)
		if err != nil {
			return reports, fmt.Errorf("train %s: %w", category, err)
		}

		log.Printf("[TRAIN] %s: samples=%d train=%.3f test=%.3f classes=%v -> %s",
			category, report.Samples, report.TrainScore, report.TestScore, report.Classes, report.ArtifactPath)
		reports = append(reports, report)
	}

	return reports, nil
}

func (t *Trainer) trainCategory(
	category domain.Category,
	ds *dataset.Dataset,
	labels []string,
	trainIdx, testIdx []int,
	outDir string,
) (TrainingReport, error) {
	report := TrainingReport{
		Category:     category,
		Samples:      ds.Len(),
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
	}

	if len(testIdx) > 0 {
		trainRows, trainLabels := subset(ds.Rows, labels, trainIdx)
		testRows, testLabels := subset(ds.Rows, labels, testIdx)

		eval, err := forest.Fit(string(category), ds.Features, trainRows, trainLabels, t.config.Forest)
		if err != nil {
			return report, err
		}
		if report.TrainScore, err = eval.Score(trainRows, trainLabels); err != nil {
			return report, err
		}
		if report.TestScore, err = eval.Score(testRows, testLabels); err != nil {
			return report, err
		}
	}

	final, err := forest.Fit(string(category), ds.Features, ds.Rows, labels, t.config.Forest)
	if err != nil {
		return report, err
	}
	if len(testIdx) == 0 {
		report.TrainSamples = ds.Len()
		if report.TrainScore, err = final.Score(ds.Rows, labels); err != nil {
			return report, err
		}
	}

	report.Classes = final.Classes()
	report.ArtifactPath = forest.ArtifactPath(outDir, string(category))
	if err := final.Save(report.ArtifactPath); err != nil {
		return report, err
	}
	return report, nil
}

// splitIndices shuffles 0..n-1 with seed and holds out round(n*testSize) indices.
// At least one sample always stays in the training split.
func splitIndices(n int, testSize float64, seed int64) (train, test []int) {
	idx := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Round(float64(n) * testSize))
	if nTest >= n {
		nTest = n - 1
	}
	if nTest < 0 {
		nTest = 0
	}
	return idx[nTest:], idx[:nTest]
}

func subset(rows [][]string, labels []string, idx []int) ([][]string, []string) {
	r := make([][]string, len(idx))
	l := make([]string, len(idx))
	for i, j := range idx {
		r[i] = rows[j]
		l[i] = labels[j]
	}
	return r, l
}

// LoadClassifiers loads the artifact of every category found in dir.
// Missing or unreadable artifacts are logged and left out so the category reports ErrModelUnavailable.
func LoadClassifiers(dir string) map[domain.Category]domain.ItemClassifier {
	models := make(map[domain.Category]domain.ItemClassifier, len(domain.Categories))
	for _, category := range domain.Categories {
		path := forest.ArtifactPath(dir, string(category))
		p, err := forest.Load(path)
		if err != nil {
			log.Printf("[PREDICT] WARNING: %s model unavailable: %v", category, err)
			continue
		}
		log.Printf("[PREDICT] Loaded %s model: %d samples, classes=%v", category, p.Samples, p.Classes())
		models[category] = p
	}
	return models
}
