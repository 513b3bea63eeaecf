package service_test

import (
	"context"
	"testing"

	"github.com/okian/asana/internal/adapters/history"
	"github.com/okian/asana/internal/adapters/mq/queue"
	service "github.com/okian/asana/internal/app"
	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/landmark"
	"github.com/okian/asana/internal/domain/model"
	"github.com/okian/asana/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func reference(p analysis.Pose) landmark.Set {
	lm, ok := analysis.ReferenceLandmarks(p)
	if !ok {
		panic("no reference for " + string(p))
	}
	return lm
}

func TestServiceNew(t *testing.T) {
	Convey("Given a service that has not been started", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(10), service.WithDedupeSize(3))
		ctx := context.Background()

		Convey("Then stats report the configuration", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["queueSize"], ShouldEqual, 10)
			So(stats["dedupeSize"], ShouldEqual, 3)
			So(stats["historyEnabled"], ShouldEqual, false)
		})

		Convey("Then synchronous analysis already works", func() {
			res := svc.Analyze(ctx, "plank", reference(analysis.Plank))
			So(res.OK(), ShouldBeTrue)
			So(res.GlobalScore, ShouldNotBeNil)
		})

		Convey("Then an unknown pose yields a failed result", func() {
			res := svc.Analyze(ctx, "lotus", reference(analysis.Plank))
			So(res.OK(), ShouldBeFalse)
			So(res.Error, ShouldEqual, analysis.ErrUnsupportedPose.Error())
		})

		Convey("Then every supported pose is listed", func() {
			So(svc.Poses(), ShouldResemble, analysis.Poses())
		})

		Convey("Then enqueueing reports a closed queue", func() {
			err := svc.Enqueue(ctx, model.Session{SessionID: "s1", UserID: "u1", Pose: "plank"})
			So(err, ShouldEqual, queue.ErrClosed)
		})

		Convey("Then leaderboard queries report the service is not started", func() {
			_, err := svc.TopN(ctx, 10)
			So(err, ShouldEqual, service.ErrNotStarted)
			_, err = svc.Rank(ctx, "u1")
			So(err, ShouldEqual, service.ErrNotStarted)
		})

		Convey("Then history is disabled", func() {
			_, _, err := svc.History(ctx, "u1", 10)
			So(err, ShouldEqual, history.ErrDisabled)
			_, err = svc.DeleteHistory(ctx, "u1")
			So(err, ShouldEqual, history.ErrDisabled)
		})

		Convey("Then Stop is a no-op", func() {
			So(func() { svc.Stop() }, ShouldNotPanic)
		})
	})
}

func TestServiceDedupe(t *testing.T) {
	Convey("Given a service with a small dedupe window", t, func() {
		svc := service.New(service.WithDedupeSize(2))
		ctx := context.Background()

		Convey("When the same session id is recorded twice", func() {
			first := svc.SeenAndRecord(ctx, "s1")
			second := svc.SeenAndRecord(ctx, "s1")

			Convey("Then only the second is reported as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(svc.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a session id is unrecorded", func() {
			svc.SeenAndRecord(ctx, "s1")
			svc.Unrecord(ctx, "s1")

			Convey("Then it can be recorded again", func() {
				So(svc.SeenAndRecord(ctx, "s1"), ShouldBeFalse)
			})
		})

		Convey("When more ids arrive than the window holds", func() {
			svc.SeenAndRecord(ctx, "s1")
			svc.SeenAndRecord(ctx, "s2")
			svc.SeenAndRecord(ctx, "s3")

			Convey("Then the oldest is forgotten", func() {
				So(svc.Size(), ShouldEqual, 2)
				So(svc.SeenAndRecord(ctx, "s1"), ShouldBeFalse)
			})
		})
	})
}

func TestServiceRecommend(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When asking for the two weakest indicators", func() {
			indicators := map[string]float64{"a": 90, "b": 40, "c": 60}
			recs := svc.Recommend(ctx, "plank", indicators, 2, scoring.SkillBeginner)

			Convey("Then the weakest comes first", func() {
				So(recs, ShouldHaveLength, 2)
				So(recs[0].TargetIndicator, ShouldEqual, "b")
				So(recs[1].TargetIndicator, ShouldEqual, "c")
			})
		})
	})
}
