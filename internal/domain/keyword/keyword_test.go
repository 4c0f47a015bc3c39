package keyword

import (
	"context"
	"testing"

	"github.com/okian/diarium/internal/domain/lexicon"
	"github.com/okian/diarium/internal/domain/mood"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAnalyze(t *testing.T) {
	Convey("Given the bundled keyword classifier", t, func() {
		c := New()

		Convey("When the text is empty or blank", func() {
			for _, text := range []string{"", "   "} {
				a := c.Analyze(text)
				So(a.Primary, ShouldResemble, mood.Score{Mood: mood.Neutral, Confidence: 0})
				So(a.Ranked, ShouldHaveLength, 1)
			}
		})

		Convey("When the text carries a single fearful phrase", func() {
			a := c.Analyze("I'm really worried about tomorrow's deadline")

			Convey("Then fearful wins with confidence 0.7", func() {
				So(a.Primary.Mood, ShouldEqual, mood.Fearful)
				So(a.Primary.Confidence, ShouldEqual, 0.7)
				So(a.Ranked, ShouldHaveLength, 3)
				So(a.Ranked[1].Confidence, ShouldEqual, 0.05)
				So(a.Tier, ShouldEqual, Name)
			})
		})

		Convey("When the text is clearly happy", func() {
			a := c.Analyze("What a wonderful, amazing day. I feel so grateful and happy!")

			Convey("Then happy is primary with a clear-winner confidence", func() {
				So(a.Primary.Mood, ShouldEqual, mood.Happy)
				So(a.Primary.Confidence, ShouldBeGreaterThanOrEqualTo, 0.6)
				So(a.Primary.Confidence, ShouldBeLessThanOrEqualTo, 0.95)
			})
		})

		Convey("When text without any phrase is analyzed", func() {
			a := c.Analyze("The train left at nine.")
			So(a.Primary.Mood, ShouldEqual, mood.Neutral)
			So(a.Primary.Confidence, ShouldEqual, 0)
		})

		Convey("Then ranked moods are distinct, sorted and at most three", func() {
			a := c.Analyze("Tired and stressed, overwhelmed, sad and angry and a bit shocked")
			So(len(a.Ranked), ShouldBeBetweenOrEqual, 1, 3)
			seen := map[mood.Mood]bool{}
			for i, s := range a.Ranked {
				So(seen[s.Mood], ShouldBeFalse)
				seen[s.Mood] = true
				if i > 0 {
					So(a.Ranked[i-1].Confidence, ShouldBeGreaterThanOrEqualTo, s.Confidence)
				}
			}
			So(a.Ranked[0], ShouldResemble, a.Primary)
		})

		Convey("Then analysis is pure", func() {
			text := "I hate being so frustrated and annoyed"
			So(c.Analyze(text), ShouldResemble, c.Analyze(text))
		})

		Convey("Then Classify never fails", func() {
			a, err := c.Classify(context.Background(), "")
			So(err, ShouldBeNil)
			So(a.Primary.Mood, ShouldEqual, mood.Neutral)
			So(c.Name(), ShouldEqual, "keyword")
		})
	})

	Convey("Given a custom lexicon", t, func() {
		c := New(WithMoodLexicon(lexicon.Set{
			{Label: "sad", Phrases: []string{"rain"}},
			{Label: "happy", Phrases: []string{"sun", "beach", "ice cream"}},
		}))

		Convey("When two happy phrases and one sad phrase appear", func() {
			a := c.Analyze("Rain in the morning, then sun at the beach")

			Convey("Then happy wins and sad gets the proportional share", func() {
				So(a.Primary.Mood, ShouldEqual, mood.Happy)
				So(a.Primary.Confidence, ShouldAlmostEqual, 2.0/3.0, 1e-12)
				So(a.Ranked[1].Mood, ShouldEqual, mood.Sad)
				So(a.Ranked[1].Confidence, ShouldAlmostEqual, 1.0/3.0, 1e-12)
			})
		})
	})
}

func TestDetect(t *testing.T) {
	Convey("Given the co-detector", t, func() {
		c := New()

		Convey("When several moods are mentioned", func() {
			scores := c.Detect("So happy and proud, but tired and exhausted and drained")

			Convey("Then each gets 0.5 + 0.1 per hit, strongest first", func() {
				So(scores, ShouldHaveLength, 2)
				So(scores[0].Mood, ShouldEqual, mood.Bad)
				So(scores[0].Confidence, ShouldAlmostEqual, 0.8, 1e-12)
				So(scores[1].Mood, ShouldEqual, mood.Happy)
				So(scores[1].Confidence, ShouldAlmostEqual, 0.7, 1e-12)
			})
		})

		Convey("When nothing matches", func() {
			So(c.Detect("a plain sentence"), ShouldBeEmpty)
		})

		Convey("When many phrases match", func() {
			scores := c.Detect("happy joy excited great wonderful amazing fantastic")
			So(scores[0].Confidence, ShouldEqual, 0.9)
		})
	})
}
