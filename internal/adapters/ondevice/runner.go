package ondevice

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/russross/blackfriday/v2"
)

// Label is one raw classifier output before taxonomy mapping.
type Label struct {
	Name  string
	Score float64
}

// Runner performs local inference on a loaded model.
type Runner interface {
	Run(ctx context.Context, text string) ([]Label, error)
}

// VaderModel selects the lexicon based sentiment runtime instead of a
// transformer pipeline.
const VaderModel = "vader"

// Loader returns a loader for modelID. The vader identifier needs no
// artifact; every other identifier is a Hugging Face repository fetched into
// dir on first use.
func Loader(modelID, dir string) func(context.Context) (Runner, error) {
	if modelID == VaderModel {
		return func(context.Context) (Runner, error) { return NewVaderRunner(), nil }
	}
	return HugotLoader(modelID, dir)
}

// hugotRunner serializes access to a text classification pipeline.
type hugotRunner struct {
	mu       sync.Mutex
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// HugotLoader downloads modelID into dir when absent and opens an ONNX
// runtime session for it.
func HugotLoader(modelID, dir string) func(context.Context) (Runner, error) {
	return func(ctx context.Context) (Runner, error) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("create model dir %s: %w", dir, err)
		}

		modelPath := filepath.Join(dir, strings.ReplaceAll(modelID, "/", "_"))
		if _, err := os.Stat(modelPath); errors.Is(err, fs.ErrNotExist) {
			downloaded, err := hugot.DownloadModel(modelID, dir, hugot.NewDownloadOptions())
			if err != nil {
				return nil, fmt.Errorf("download %s: %w", modelID, err)
			}
			modelPath = downloaded
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session, err := hugot.NewORTSession()
		if err != nil {
			return nil, fmt.Errorf("open runtime session: %w", err)
		}
		pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
			ModelPath: modelPath,
			Name:      "moodClassification",
		})
		if err != nil {
			_ = session.Destroy()
			return nil, fmt.Errorf("create pipeline for %s: %w", modelID, err)
		}
		return &hugotRunner{session: session, pipeline: pipeline}, nil
	}
}

func (r *hugotRunner) Run(ctx context.Context, text string) ([]Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	out, err := r.pipeline.RunPipeline([]string{text})
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	if len(out.ClassificationOutputs) == 0 {
		return nil, nil
	}

	labels := make([]Label, 0, len(out.ClassificationOutputs[0]))
	for _, o := range out.ClassificationOutputs[0] {
		labels = append(labels, Label{Name: o.Label, Score: float64(o.Score)})
	}
	return labels, nil
}

// Close releases the runtime session.
func (r *hugotRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Destroy()
}

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)

	quoteFolder = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)
)

// vaderThreshold is the compound polarity beyond which text counts as
// positive or negative.
const vaderThreshold = 0.20

// VaderRunner scores text with the VADER sentiment lexicon.
type VaderRunner struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderRunner creates a ready runner.
func NewVaderRunner() *VaderRunner {
	return &VaderRunner{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Run returns a single positive, negative or neutral label whose score is
// the compound polarity magnitude.
func (v *VaderRunner) Run(ctx context.Context, text string) ([]Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scores := v.analyzer.PolarityScores(PlainText(text))

	switch c := scores.Compound; {
	case c >= vaderThreshold:
		return []Label{{Name: "positive", Score: c}}, nil
	case c <= -vaderThreshold:
		return []Label{{Name: "negative", Score: -c}}, nil
	default:
		return []Label{{Name: "neutral", Score: scores.Neutral}}, nil
	}
}

// PlainText renders diary markdown to collapsed plain text without links.
func PlainText(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := html.UnescapeString(htmlTag.ReplaceAllString(string(rendered), " "))
	text = quoteFolder.Replace(text)
	text = strings.Join(strings.Fields(text), " ")
	text = markdownLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(bareURL.ReplaceAllString(text, ""))
}
