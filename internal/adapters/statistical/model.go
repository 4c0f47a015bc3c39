package statistical

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/navossoc/bayesian"

	"github.com/okian/diarium/internal/domain/lexicon"
	"github.com/okian/diarium/internal/domain/mood"
)

// Model scores a tokenized document against its trained label set.
type Model interface {
	// Labels returns the trained labels in score order.
	Labels() []string
	// LogScores returns one log-likelihood per label.
	LogScores(tokens []string) []float64
}

// bayesModel adapts a naive Bayes artifact to Model.
type bayesModel struct {
	c      *bayesian.Classifier
	labels []string
}

// NewBayesModel wraps an in-memory naive Bayes classifier.
func NewBayesModel(c *bayesian.Classifier) Model {
	labels := make([]string, len(c.Classes))
	for i, class := range c.Classes {
		labels[i] = string(class)
	}
	return &bayesModel{c: c, labels: labels}
}

func (m *bayesModel) Labels() []string { return m.labels }

func (m *bayesModel) LogScores(tokens []string) []float64 {
	scores, _, _ := m.c.LogScores(tokens)
	return scores
}

// BayesLoader returns a loader for the naive Bayes artifact at path. A
// missing artifact, or a tf-idf artifact saved before conversion, is
// reported as mood.ErrModelUnavailable.
func BayesLoader(path string) func(context.Context) (Model, error) {
	return func(context.Context) (Model, error) {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("artifact %s not found: %w", path, mood.ErrModelUnavailable)
			}
			return nil, fmt.Errorf("stat artifact %s: %w", path, err)
		}
		c, err := bayesian.NewClassifierFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("decode artifact %s: %w", path, err)
		}
		if len(c.Classes) < 2 {
			return nil, fmt.Errorf("artifact %s has %d labels: %w", path, len(c.Classes), mood.ErrModelUnavailable)
		}
		if c.IsTfIdf() && !c.DidConvertTfIdf {
			return nil, fmt.Errorf("artifact %s: tf-idf weights not converted: %w", path, mood.ErrModelUnavailable)
		}
		return NewBayesModel(c), nil
	}
}

// Tokenize splits normalized text into word tokens. Apostrophes stay inside
// words so contractions survive.
func Tokenize(text string) []string {
	return strings.FieldsFunc(lexicon.Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
