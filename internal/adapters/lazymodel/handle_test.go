package lazymodel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/diarium/internal/domain/mood"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHandle(t *testing.T) {
	Convey("Given a handle with a slow loader", t, func() {
		var calls atomic.Int32
		release := make(chan struct{})
		h := New("test-model", func(ctx context.Context) (string, error) {
			calls.Add(1)
			<-release
			return "model", nil
		})

		So(h.State(), ShouldEqual, Unloaded)

		Convey("When many callers wait concurrently", func() {
			const callers = 32
			var wg sync.WaitGroup
			results := make([]string, callers)
			errs := make([]error, callers)
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = h.Wait(context.Background())
				}(i)
			}

			// all callers are parked on the same pending load
			for h.State() != Loading {
				time.Sleep(time.Millisecond)
			}
			close(release)
			wg.Wait()

			Convey("Then the loader ran once and everyone saw the same value", func() {
				So(calls.Load(), ShouldEqual, 1)
				for i := 0; i < callers; i++ {
					So(errs[i], ShouldBeNil)
					So(results[i], ShouldEqual, "model")
				}
				So(h.State(), ShouldEqual, Loaded)
			})

			Convey("Then later callers reuse the terminal outcome", func() {
				v, err := h.Wait(context.Background())
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "model")
				So(calls.Load(), ShouldEqual, 1)
			})
		})

		Convey("When a caller gives up before the load finishes", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := h.Wait(ctx)

			Convey("Then only that caller fails and the load continues", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				close(release)
				v, err := h.Wait(context.Background())
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "model")
			})
		})
	})

	Convey("Given a handle whose loader fails", t, func() {
		var calls atomic.Int32
		h := New("missing", func(context.Context) (int, error) {
			calls.Add(1)
			return 0, errors.New("no such file")
		})

		_, err := h.Wait(context.Background())

		Convey("Then the failure is terminal and classified as unavailable", func() {
			So(errors.Is(err, mood.ErrModelUnavailable), ShouldBeTrue)
			So(h.State(), ShouldEqual, Failed)

			_, again := h.Wait(context.Background())
			So(again, ShouldEqual, err)
			So(calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a handle whose loader panics", t, func() {
		h := New("boom", func(context.Context) (int, error) {
			panic("corrupt artifact")
		})

		_, err := h.Wait(context.Background())

		Convey("Then the panic becomes a failed load", func() {
			So(errors.Is(err, ErrLoadPanicked), ShouldBeTrue)
			So(errors.Is(err, mood.ErrModelUnavailable), ShouldBeTrue)
			So(h.State(), ShouldEqual, Failed)
			So(h.State().String(), ShouldEqual, "failed")
		})
	})
}
