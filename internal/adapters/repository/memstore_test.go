package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/internal/domain/mood"
	. "github.com/smartystreets/goconvey/convey"
)

func analysis(id string, m mood.Mood) model.EntryAnalysis {
	return model.EntryAnalysis{
		EntryID:    id,
		Mood:       mood.NewAnalysis(mood.Score{Mood: m, Confidence: 0.8}),
		AnalyzedAt: time.Now(),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := NewMemoryStore(ctx, WithMetricsUpdateInterval(10*time.Millisecond))
		defer s.Close()

		So(s.Count(ctx), ShouldEqual, 0)

		Convey("When an unknown entry is requested", func() {
			_, err := s.Get(ctx, "missing")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("When an analysis without id is saved", func() {
			So(s.Save(ctx, model.EntryAnalysis{}), ShouldEqual, ErrMissingID)
		})

		Convey("When analyses are saved", func() {
			So(s.Save(ctx, analysis("a", mood.Happy)), ShouldBeNil)
			So(s.Save(ctx, analysis("b", mood.Sad)), ShouldBeNil)
			So(s.Save(ctx, analysis("c", mood.Angry)), ShouldBeNil)

			Convey("Then they can be read back", func() {
				got, err := s.Get(ctx, "b")
				So(err, ShouldBeNil)
				So(got.Mood.Primary.Mood, ShouldEqual, mood.Sad)
				So(s.Count(ctx), ShouldEqual, 3)
			})

			Convey("Then Recent lists newest first", func() {
				recent, err := s.Recent(ctx, 2)
				So(err, ShouldBeNil)
				So(recent, ShouldHaveLength, 2)
				So(recent[0].EntryID, ShouldEqual, "c")
				So(recent[1].EntryID, ShouldEqual, "b")

				all, err := s.Recent(ctx, 10)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 3)
			})

			Convey("Then a non-positive limit is rejected", func() {
				_, err := s.Recent(ctx, 0)
				So(err, ShouldEqual, ErrInvalidLimit)
			})

			Convey("Then re-saving an entry replaces it and moves it to the front", func() {
				So(s.Save(ctx, analysis("a", mood.Fearful)), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 3)
				recent, _ := s.Recent(ctx, 1)
				So(recent[0].EntryID, ShouldEqual, "a")
				So(recent[0].Mood.Primary.Mood, ShouldEqual, mood.Fearful)
			})
		})
	})

	Convey("Given a bounded store", t, func() {
		s := NewMemoryStore(ctx, WithMaxRecords(2))
		defer s.Close()

		for _, id := range []string{"a", "b", "c"} {
			So(s.Save(ctx, analysis(id, mood.Happy)), ShouldBeNil)
		}

		Convey("Then the oldest analysis is dropped", func() {
			So(s.Count(ctx), ShouldEqual, 2)
			_, err := s.Get(ctx, "a")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a bounded store with a re-saved entry", t, func() {
		s := NewMemoryStore(ctx, WithMaxRecords(3))
		defer s.Close()

		for _, id := range []string{"a", "b", "c", "a", "d", "e"} {
			So(s.Save(ctx, analysis(id, mood.Happy)), ShouldBeNil)
		}

		Convey("Then the re-saved entry survives eviction and the bound holds", func() {
			So(s.Count(ctx), ShouldEqual, 3)
			recent, err := s.Recent(ctx, 10)
			So(err, ShouldBeNil)
			ids := make([]string, 0, len(recent))
			for _, r := range recent {
				ids = append(ids, r.EntryID)
			}
			So(ids, ShouldResemble, []string{"e", "d", "a"})
			_, err = s.Get(ctx, "b")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given concurrent writers", t, func() {
		s := NewMemoryStore(ctx)
		defer s.Close()

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					_ = s.Save(ctx, analysis(fmt.Sprintf("%d-%d", w, i), mood.Bad))
					_, _ = s.Recent(ctx, 5)
				}
			}(w)
		}
		wg.Wait()

		So(s.Count(ctx), ShouldEqual, 400)
	})

	Convey("Given a store closed twice", t, func() {
		s := NewMemoryStore(ctx)
		So(s.Close(), ShouldBeNil)
		So(s.Close(), ShouldBeNil)
	})
}
