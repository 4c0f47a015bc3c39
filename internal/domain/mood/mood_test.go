package mood

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewAnalysis(t *testing.T) {
	Convey("Given a set of mood scores", t, func() {
		Convey("When no scores are given", func() {
			a := NewAnalysis()

			Convey("Then it should collapse to neutral with zero confidence", func() {
				So(a.Primary, ShouldResemble, Score{Mood: Neutral, Confidence: 0})
				So(a.Ranked, ShouldHaveLength, 1)
			})
		})

		Convey("When scores contain duplicates and more than three moods", func() {
			a := NewAnalysis(
				Score{Mood: Sad, Confidence: 0.2},
				Score{Mood: Happy, Confidence: 0.5},
				Score{Mood: Sad, Confidence: 0.7},
				Score{Mood: Angry, Confidence: 0.1},
				Score{Mood: Fearful, Confidence: 0.3},
			)

			Convey("Then moods should be distinct, ranked and truncated", func() {
				So(a.Ranked, ShouldHaveLength, MaxRanked)
				So(a.Ranked[0], ShouldResemble, a.Primary)
				So(a.Ranked[0].Mood, ShouldEqual, Sad)
				So(a.Ranked[0].Confidence, ShouldEqual, 0.7)
				So(a.Ranked[1].Mood, ShouldEqual, Happy)
				So(a.Ranked[2].Mood, ShouldEqual, Fearful)
			})
		})

		Convey("When two moods tie", func() {
			a := NewAnalysis(
				Score{Mood: Bad, Confidence: 0.4},
				Score{Mood: Happy, Confidence: 0.4},
			)

			Convey("Then input order should break the tie", func() {
				So(a.Primary.Mood, ShouldEqual, Bad)
				So(a.Ranked[1].Mood, ShouldEqual, Happy)
			})
		})

		Convey("When confidences fall outside the unit interval", func() {
			a := NewAnalysis(
				Score{Mood: Happy, Confidence: 1.7},
				Score{Mood: Sad, Confidence: -0.2},
			)

			Convey("Then they should be clamped", func() {
				So(a.Ranked[0].Confidence, ShouldEqual, 1)
				So(a.Ranked[1].Confidence, ShouldEqual, 0)
			})
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given mood names", t, func() {
		m, ok := Parse(" Happy ")
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, Happy)

		m, ok = Parse("neutral")
		So(ok, ShouldBeTrue)
		So(m, ShouldEqual, Neutral)

		m, ok = Parse("melancholy")
		So(ok, ShouldBeFalse)
		So(m, ShouldEqual, Neutral)
	})
}

func TestKind(t *testing.T) {
	Convey("Given wrapped tier errors", t, func() {
		So(Kind(nil), ShouldEqual, "none")
		So(Kind(fmt.Errorf("remote: %w", ErrTransientTierFailure)), ShouldEqual, "transient")
		So(Kind(fmt.Errorf("load: %w", ErrModelUnavailable)), ShouldEqual, "model_unavailable")
		So(Kind(ErrUncertainResult), ShouldEqual, "uncertain")
		So(Kind(ErrInputEmpty), ShouldEqual, "input_empty")
		So(Kind(errors.New("boom")), ShouldEqual, "unknown")
	})
}
