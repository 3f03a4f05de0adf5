package arbor

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

// CrossValidationError represents an error related with cross validation
type CrossValidationError string

const (
	// ErrInvalidFoldConfiguration is returned when the number of folds
	// is not positive or exceeds the number of rows.
	ErrInvalidFoldConfiguration = CrossValidationError("invalid fold configuration")
)

func (cve CrossValidationError) Error() string {
	return string(cve)
}

// Fold holds the outcome of training and validating a tree on
// one of the folds of a cross validation
type Fold struct {
	Index      int
	Accuracy   float64
	Tree       *tree.Tree
	Validation dataset.Rows
	Training   dataset.Rows
}

// CrossValidation holds the outcome of a cross validation: every fold
// and the tree with the best validation accuracy
type CrossValidation struct {
	Best     *tree.Tree
	BestFold int
	Folds    []Fold
}

// BestAccuracy returns the validation accuracy of the best tree
func (cv *CrossValidation) BestAccuracy() float64 {
	return cv.Folds[cv.BestFold].Accuracy
}

type cvOptions struct {
	rnd    *rand.Rand
	logger logrus.FieldLogger
}

// CVOption configures a cross validation
type CVOption func(*cvOptions)

// WithRand sets the source of randomness used to shuffle
// the training rows of every fold.
func WithRand(rnd *rand.Rand) CVOption {
	return func(o *cvOptions) {
		o.rnd = rnd
	}
}

// WithLogger sets a logger to report the accuracy of every fold
func WithLogger(l logrus.FieldLogger) CVOption {
	return func(o *cvOptions) {
		o.logger = l
	}
}

/*
CrossValidate takes a context, a set of rows, the index of their label
column, a Trainer and a number of folds and performs a k-fold cross
validation.

The rows are split in folds of ⌊N/folds⌋ consecutive rows in their original
order. For every fold, a tree is trained with the Trainer on the rest of rows
(including the remainder rows that do not fit in any fold) in shuffled order,
and validated on the rows of the fold. Rows the tree cannot classify count as
wrong predictions.

The tree with the strictly highest validation accuracy is chosen as the best,
the first fold winning ties. A best tree is returned even if all folds score
an accuracy of 0.

An error wrapping ErrInvalidFoldConfiguration is returned if folds is not
positive or exceeds the number of rows.
*/
func CrossValidate(ctx context.Context, rows dataset.Rows, labelIndex int, train Trainer, folds int, opts ...CVOption) (*CrossValidation, error) {
	if folds <= 0 || folds > len(rows) {
		return nil, fmt.Errorf("%d folds for %d rows: %w", folds, len(rows), ErrInvalidFoldConfiguration)
	}
	o := &cvOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		o.logger = l
	}
	foldSize := len(rows) / folds
	cv := &CrossValidation{Folds: make([]Fold, 0, folds)}
	for i := 0; i < folds; i++ {
		start, end := i*foldSize, (i+1)*foldSize
		validation := rows[start:end].Copy()
		training := make(dataset.Rows, 0, len(rows)-foldSize)
		training = append(training, rows[:start]...)
		training = append(training, rows[end:]...)
		o.rnd.Shuffle(len(training), func(a, b int) {
			training[a], training[b] = training[b], training[a]
		})
		t, err := train(ctx, training, labelIndex)
		if err != nil {
			return nil, fmt.Errorf("training fold %d: %w", i, err)
		}
		accuracy, err := t.Accuracy(ctx, validation)
		if err != nil {
			return nil, fmt.Errorf("validating fold %d: %w", i, err)
		}
		o.logger.WithFields(logrus.Fields{
			"fold":     i,
			"training": len(training),
			"accuracy": accuracy,
		}).Debug("fold validated")
		cv.Folds = append(cv.Folds, Fold{
			Index:      i,
			Accuracy:   accuracy,
			Tree:       t,
			Validation: validation,
			Training:   training,
		})
		if cv.Best == nil || accuracy > cv.Folds[cv.BestFold].Accuracy {
			cv.Best = t
			cv.BestFold = i
		}
	}
	o.logger.WithFields(logrus.Fields{
		"fold":     cv.BestFold,
		"accuracy": cv.BestAccuracy(),
	}).Info("best fold selected")
	return cv, nil
}
