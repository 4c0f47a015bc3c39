package ondevice

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/diarium/internal/adapters/lazymodel"
	"github.com/okian/diarium/internal/config"
	"github.com/okian/diarium/internal/domain/keyword"
	"github.com/okian/diarium/internal/domain/mood"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeRunner struct {
	labels []Label
	err    error
}

func (f *fakeRunner) Run(context.Context, string) ([]Label, error) {
	return f.labels, f.err
}

func withRunner(r Runner) Option {
	return WithLoader(func(context.Context) (Runner, error) { return r, nil })
}

func TestClassify(t *testing.T) {
	ctx := context.Background()
	kw := keyword.New()

	Convey("Given a binary sentiment model", t, func() {
		c := New(kw, withRunner(&fakeRunner{labels: []Label{
			{Name: "NEGATIVE", Score: 0.02},
			{Name: "POSITIVE", Score: 0.98},
		}}))

		Convey("When the text also mentions other moods", func() {
			a, err := c.Classify(ctx, "I'm so happy and grateful but tired")

			Convey("Then model and keyword moods are merged", func() {
				So(err, ShouldBeNil)
				So(a.Tier, ShouldEqual, Name)
				So(a.Ranked, ShouldHaveLength, 3)

				So(a.Primary.Mood, ShouldEqual, mood.Happy)
				So(a.Primary.Confidence, ShouldEqual, 0.95)
				So(a.Primary.SourceLabel, ShouldEqual, "POSITIVE")

				So(a.Ranked[1].Mood, ShouldEqual, mood.Bad)
				So(a.Ranked[1].Confidence, ShouldAlmostEqual, 0.66, 1e-9)
				So(a.Ranked[1].SourceLabel, ShouldEqual, KeywordSource)

				So(a.Ranked[2].Mood, ShouldEqual, mood.Sad)
				So(a.Ranked[2].Confidence, ShouldAlmostEqual, 0.02, 1e-9)
				So(c.State(), ShouldEqual, lazymodel.Loaded)
			})
		})
	})

	Convey("Given a model that only reports neutral", t, func() {
		c := New(kw, withRunner(&fakeRunner{labels: []Label{{Name: "neutral", Score: 0.9}}}))

		Convey("When a keyword mood is present", func() {
			a, err := c.Classify(ctx, "I'm really worried about tomorrow's deadline")

			Convey("Then the neutral label is dropped and the keyword mood wins", func() {
				So(err, ShouldBeNil)
				So(a.Primary.Mood, ShouldEqual, mood.Fearful)
				So(a.Primary.Confidence, ShouldAlmostEqual, 0.66, 1e-9)
				So(a.Ranked, ShouldHaveLength, 1)
			})
		})

		Convey("When nothing else is detected", func() {
			a, err := c.Classify(ctx, "the bus was on time")

			Convey("Then the result is neutral", func() {
				So(err, ShouldBeNil)
				So(a.Primary.Mood, ShouldEqual, mood.Neutral)
				So(a.Primary.Confidence, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a keyword detection stronger than the model label", t, func() {
		c := New(kw, withRunner(&fakeRunner{labels: []Label{{Name: "fear", Score: 0.4}}}))
		a, err := c.Classify(ctx, "anxious and worried and scared")

		Convey("Then the keyword score replaces it", func() {
			So(err, ShouldBeNil)
			So(a.Primary.Mood, ShouldEqual, mood.Fearful)
			So(a.Primary.Confidence, ShouldAlmostEqual, 0.88, 1e-9)
			So(a.Primary.SourceLabel, ShouldEqual, KeywordSource)
		})
	})

	Convey("Given a failing inference runtime", t, func() {
		c := New(kw, withRunner(&fakeRunner{err: errors.New("tensor shape mismatch")}))

		Convey("Then Classify reports a transient failure", func() {
			_, err := c.Classify(ctx, "so happy")
			So(errors.Is(err, mood.ErrTransientTierFailure), ShouldBeTrue)
		})

		Convey("Then Analyze degrades to neutral at 0.5", func() {
			a := c.Analyze(ctx, "so happy")
			So(a.Primary, ShouldResemble, mood.Score{Mood: mood.Neutral, Confidence: 0.5})
		})
	})

	Convey("Given a model that cannot be loaded", t, func() {
		c := New(kw, WithLoader(func(context.Context) (Runner, error) {
			return nil, errors.New("no onnx runtime")
		}))

		_, err := c.Classify(ctx, "so happy")

		Convey("Then the tier is unavailable", func() {
			So(errors.Is(err, mood.ErrModelUnavailable), ShouldBeTrue)
			So(c.State(), ShouldEqual, lazymodel.Failed)
		})
	})

	Convey("Given blank input", t, func() {
		c := New(kw, withRunner(&fakeRunner{}))
		a, err := c.Classify(ctx, "\n\t")
		So(err, ShouldBeNil)
		So(a.Primary, ShouldResemble, mood.Score{Mood: mood.Neutral, Confidence: 0})
		So(c.State(), ShouldEqual, lazymodel.Unloaded)
	})
}

func TestVaderRunner(t *testing.T) {
	ctx := context.Background()
	r := NewVaderRunner()

	Convey("Given the VADER runtime", t, func() {
		Convey("When the text is clearly positive", func() {
			labels, err := r.Run(ctx, "I love this wonderful, amazing day!")
			So(err, ShouldBeNil)
			So(labels, ShouldHaveLength, 1)
			So(labels[0].Name, ShouldEqual, "positive")
			So(labels[0].Score, ShouldBeGreaterThan, vaderThreshold)
		})

		Convey("When the text is clearly negative", func() {
			labels, err := r.Run(ctx, "This was a horrible, terrible, awful day.")
			So(err, ShouldBeNil)
			So(labels[0].Name, ShouldEqual, "negative")
			So(labels[0].Score, ShouldBeGreaterThan, vaderThreshold)
		})

		Convey("When used through the classifier", func() {
			c := New(keyword.New(), WithModel(VaderModel))
			a, err := c.Classify(ctx, "I love this wonderful, amazing day!")
			So(err, ShouldBeNil)
			So(a.Primary.Mood, ShouldEqual, mood.Happy)
			So(c.Model(), ShouldEqual, VaderModel)
		})
	})
}

func TestPlainText(t *testing.T) {
	Convey("Given markdown with links", t, func() {
		got := PlainText("**Great** day, see [link](https://example.com) www.example.org")
		So(got, ShouldEqual, "Great day, see link")
	})

	Convey("Given smart quotes", t, func() {
		So(PlainText("don't stop"), ShouldEqual, "don't stop")
	})
}

func TestDefaultsMatchConfig(t *testing.T) {
	Convey("Given the configuration defaults", t, func() {
		cfg := config.New()
		So(cfg.OnDeviceModel, ShouldEqual, DefaultModel)
		So(cfg.OnDeviceModelDir, ShouldEqual, DefaultModelDir)
	})
}
