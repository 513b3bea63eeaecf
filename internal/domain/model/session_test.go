package model_test

import (
	"testing"
	"time"

	model "github.com/okian/asana/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSessionValidate(t *testing.T) {
	convey.Convey("Given a complete session", t, func() {
		s := model.Session{
			SessionID:  "session-1",
			UserID:     "user-1",
			Pose:       "tree",
			Confidence: 0.92,
			TS:         time.Now(),
		}

		convey.Convey("Then it validates", func() {
			convey.So(s.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When an identifier is missing", func() {
			noSession, noUser, noPose := s, s, s
			noSession.SessionID = ""
			noUser.UserID = ""
			noPose.Pose = ""

			convey.Convey("Then the matching error is returned", func() {
				convey.So(noSession.Validate(), convey.ShouldEqual, model.ErrMissingSessionID)
				convey.So(noUser.Validate(), convey.ShouldEqual, model.ErrMissingUserID)
				convey.So(noPose.Validate(), convey.ShouldEqual, model.ErrMissingPose)
			})
		})

		convey.Convey("When the confidence is out of range", func() {
			s.Confidence = 1.2

			convey.Convey("Then it is rejected", func() {
				convey.So(s.Validate(), convey.ShouldEqual, model.ErrConfidenceRange)
			})
		})

		convey.Convey("When the confidence is at a bound", func() {
			s.Confidence = 0

			convey.Convey("Then it is accepted", func() {
				convey.So(s.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
