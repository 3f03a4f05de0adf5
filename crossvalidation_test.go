package arbor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

func parityRows(n int) dataset.Rows {
	rows := make(dataset.Rows, n)
	for i := range rows {
		parity := "even"
		if i%2 == 1 {
			parity = "odd"
		}
		rows[i] = dataset.Row{fmt.Sprintf("%d", i%2), parity}
	}
	return rows
}

// constantTrainer ignores the training rows and grows a single
// leaf predicting class
func constantTrainer(class string) Trainer {
	return func(ctx context.Context, rows dataset.Rows, labelIndex int) (*tree.Tree, error) {
		return CreateTree(ctx, dataset.Rows{{"", class}}, 1)
	}
}

func TestCrossValidateFolds(t *testing.T) {
	ctx := context.Background()
	rows := parityRows(100)
	cv, err := CrossValidate(ctx, rows, 1, ID3Trainer(), 4, WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	require.Len(t, cv.Folds, 4)
	for i, f := range cv.Folds {
		assert.Equal(t, i, f.Index)
		assert.Len(t, f.Validation, 25)
		assert.Len(t, f.Training, 75)
		assert.Equal(t, rows[i*25:(i+1)*25], f.Validation)
		assert.Equal(t, 1.0, f.Accuracy)
	}
	assert.Equal(t, 0, cv.BestFold)
	assert.Equal(t, cv.Folds[0].Tree, cv.Best)
	assert.Equal(t, 1.0, cv.BestAccuracy())
}

func TestCrossValidateRemainderRowsAreTrainedOn(t *testing.T) {
	ctx := context.Background()
	rows := parityRows(10)
	cv, err := CrossValidate(ctx, rows, 1, ID3Trainer(), 3)
	require.NoError(t, err)
	for _, f := range cv.Folds {
		assert.Len(t, f.Validation, 3)
		assert.Len(t, f.Training, 7)
		assert.Contains(t, f.Training, rows[9])
	}
}

func TestCrossValidateBestFold(t *testing.T) {
	ctx := context.Background()
	rows := make(dataset.Rows, 100)
	for i := range rows {
		class := "a"
		if i >= 50 {
			class = "b"
		}
		rows[i] = dataset.Row{"x", class}
	}
	cv, err := CrossValidate(ctx, rows, 1, constantTrainer("b"), 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 1}, []float64{
		cv.Folds[0].Accuracy, cv.Folds[1].Accuracy, cv.Folds[2].Accuracy, cv.Folds[3].Accuracy,
	})
	assert.Equal(t, 2, cv.BestFold)

	cv, err = CrossValidate(ctx, rows, 1, constantTrainer("c"), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, cv.BestFold)
	assert.NotNil(t, cv.Best)
	assert.Equal(t, 0.0, cv.BestAccuracy())
}

func TestCrossValidateInvalidFolds(t *testing.T) {
	ctx := context.Background()
	for _, folds := range []int{0, -1, 11} {
		_, err := CrossValidate(ctx, parityRows(10), 1, ID3Trainer(), folds)
		assert.True(t, errors.Is(err, ErrInvalidFoldConfiguration), "%d folds", folds)
	}
}

func TestCrossValidateTrainerError(t *testing.T) {
	ctx := context.Background()
	failing := func(ctx context.Context, rows dataset.Rows, labelIndex int) (*tree.Tree, error) {
		return nil, dataset.ErrEmptyDataset
	}
	_, err := CrossValidate(ctx, parityRows(10), 1, failing, 2)
	assert.True(t, errors.Is(err, dataset.ErrEmptyDataset))
}

func TestCrossValidateLogsFolds(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.Level = logrus.DebugLevel
	_, err := CrossValidate(ctx, parityRows(20), 1, ID3Trainer(), 2, WithLogger(l))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fold validated")
	assert.Contains(t, buf.String(), "best fold selected")
}
