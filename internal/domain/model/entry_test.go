package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/okian/diarium/internal/domain/model"
	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/internal/domain/textanalysis"
	"github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	convey.Convey("Given diary entries", t, func() {
		convey.Convey("When the entry has text", func() {
			e := model.Entry{EntryID: "e-1", Text: "walked the dog", SubmittedAt: time.Now()}
			convey.So(e.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the entry is blank", func() {
			e := model.Entry{EntryID: "e-2", Text: " \n "}
			convey.So(e.Validate(), convey.ShouldEqual, model.ErrEmptyText)
		})
	})
}

func TestEntryAnalysisJSON(t *testing.T) {
	convey.Convey("Given a stored analysis", t, func() {
		a := model.EntryAnalysis{
			EntryID:    "e-1",
			Mood:       mood.NewAnalysis(mood.Score{Mood: mood.Happy, Confidence: 0.8}).WithTier("keyword"),
			Temporal:   textanalysis.Temporal{Present: 1},
			Categories: textanalysis.Categories{"life": 1},
			AnalyzedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}

		raw, err := json.Marshal(a)
		convey.So(err, convey.ShouldBeNil)

		var doc map[string]any
		convey.So(json.Unmarshal(raw, &doc), convey.ShouldBeNil)

		convey.Convey("Then the wire names are stable", func() {
			convey.So(doc, convey.ShouldContainKey, "entry_id")
			convey.So(doc, convey.ShouldContainKey, "mood")
			convey.So(doc, convey.ShouldContainKey, "temporal")
			convey.So(doc, convey.ShouldContainKey, "category")
			convey.So(doc["analyzed_at"], convey.ShouldEqual, "2026-01-02T03:04:05Z")
		})
	})
}
