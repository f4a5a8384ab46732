package usecase

import (
	"context"
	"os"
	"testing"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/dataset"
	"github.com/fitlens/backend/internal/infrastructure/forest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trainingDataset labels top by style, bottom by gender and outer by price tier
func trainingDataset() *dataset.Dataset {
	ds := &dataset.Dataset{
		Features: domain.FeatureColumns,
		Targets:  map[string][]string{},
	}
	tops := map[string]string{"casual": "hoodie", "street": "tshirt", "classic": "shirt", "sporty": "sweatshirt"}
	bottoms := map[string]string{"male": "slacks", "female": "skirt"}
	outers := map[string]string{"under_50": "windbreaker", "50_100": "cardigan", "over_300": "coat"}

	for _, gender := range []string{"male", "female"} {
		for _, style := range []string{"casual", "street", "classic", "sporty"} {
			for _, color := range []string{"black", "white"} {
				for _, tier := range []string{"under_50", "50_100", "over_300"} {
					ds.Rows = append(ds.Rows, []string{gender, style, color, tier})
					ds.Targets["top"] = append(ds.Targets["top"], tops[style])
					ds.Targets["bottom"] = append(ds.Targets["bottom"], bottoms[gender])
					ds.Targets["outer"] = append(ds.Targets["outer"], outers[tier])
				}
			}
		}
	}
	return ds
}

func testTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Forest:   forest.Config{NumTrees: 30, MinSamplesSplit: 2, Seed: 42},
		TestSize: 0.2,
	}
}

func TestTrainer_Train(t *testing.T) {
	dir := t.TempDir()
	trainer := NewTrainer(testTrainerConfig())

	reports, err := trainer.Train(context.Background(), trainingDataset(), dir)

	require.NoError(t, err)
	require.Len(t, reports, 3)
	for _, r := range reports {
		assert.Equal(t, 48, r.Samples)
		assert.Equal(t, 10, r.TestSamples)
		assert.Equal(t, 38, r.TrainSamples)
		assert.GreaterOrEqual(t, r.TrainScore, 0.9, "train score for %s", r.Category)
		assert.Equal(t, forest.ArtifactPath(dir, string(r.Category)), r.ArtifactPath)

		_, err := os.Stat(r.ArtifactPath)
		assert.NoError(t, err)
	}
	assert.Equal(t, []string{"hoodie", "shirt", "sweatshirt", "tshirt"}, reports[0].Classes)
	assert.Equal(t, []string{"skirt", "slacks"}, reports[1].Classes)
	assert.Equal(t, []string{"cardigan", "coat", "windbreaker"}, reports[2].Classes)

	models := LoadClassifiers(dir)
	require.Len(t, models, 3)

	predictor := NewItemPredictor(models)
	item, err := predictor.Predict(context.Background(), domain.CategoryBottom,
		domain.Attributes{Gender: "female", Color: "black", Style: "casual", PriceTier: "50_100"})
	require.NoError(t, err)
	assert.Equal(t, "skirt", item)
}

func TestTrainer_NoHoldout(t *testing.T) {
	cfg := testTrainerConfig()
	cfg.TestSize = 0
	trainer := NewTrainer(cfg)

	reports, err := trainer.Train(context.Background(), trainingDataset(), t.TempDir())

	require.NoError(t, err)
	for _, r := range reports {
		assert.Equal(t, 0, r.TestSamples)
		assert.Equal(t, 48, r.TrainSamples)
		assert.Zero(t, r.TestScore)
	}
}

func TestTrainer_Errors(t *testing.T) {
	trainer := NewTrainer(testTrainerConfig())

	_, err := trainer.Train(context.Background(), nil, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrDatasetInvalid)

	ds := trainingDataset()
	delete(ds.Targets, "outer")
	reports, err := trainer.Train(context.Background(), ds, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrDatasetInvalid)
	assert.Len(t, reports, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = trainer.Train(ctx, trainingDataset(), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitIndices(t *testing.T) {
	train, test := splitIndices(10, 0.2, 42)
	assert.Len(t, train, 8)
	assert.Len(t, test, 2)

	seen := map[int]bool{}
	for _, i := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[i])
		seen[i] = true
	}
	assert.Len(t, seen, 10)

	again, _ := splitIndices(10, 0.2, 42)
	assert.Equal(t, train, again)

	train, test = splitIndices(1, 0.5, 42)
	assert.Len(t, train, 1)
	assert.Empty(t, test)
}

func TestLoadClassifiers_MissingDir(t *testing.T) {
	models := LoadClassifiers(t.TempDir())
	assert.Empty(t, models)

	predictor := NewItemPredictor(models)
	_, err := predictor.Predict(context.Background(), domain.CategoryTop, femaleCasualBlack)
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}
