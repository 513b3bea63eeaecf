package analysis_test

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/landmark"
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

func shouldBeBoundedScores(actual any, _ ...any) string {
	for name, v := range actual.(analysis.Indicators) {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return "indicator " + name + " out of [0, 100]"
		}
	}
	return ""
}

func TestParsePose(t *testing.T) {
	Convey("Given pose names", t, func() {
		Convey("When the name is supported", func() {
			for _, name := range []string{"downdog", "plank", "tree", "warrior2", "goddess"} {
				p, err := analysis.ParsePose(name)
				So(err, ShouldBeNil)
				So(p.String(), ShouldEqual, name)
				So(p.Analyzer(), ShouldNotBeNil)
			}
		})

		Convey("When the name differs in case or is unknown", func() {
			for _, name := range []string{"Downdog", "PLANK", "headstand", ""} {
				_, err := analysis.ParsePose(name)
				So(err, ShouldWrap, analysis.ErrUnsupportedPose)
			}
		})

		Convey("Then every listed pose has an analyzer and a reference", func() {
			So(analysis.Poses(), ShouldHaveLength, 5)
			for _, p := range analysis.Poses() {
				So(p.Analyzer(), ShouldNotBeNil)
				_, ok := analysis.ReferenceLandmarks(p)
				So(ok, ShouldBeTrue)
			}
		})
	})
}

func TestEngineReferencePoses(t *testing.T) {
	Convey("Given an engine and well-executed reference poses", t, func() {
		engine := analysis.NewEngine()

		for _, p := range engine.Poses() {
			res := engine.Analyze(string(p), reference(p))

			Convey("Then "+string(p)+" scores at least 80 overall", func() {
				So(res.OK(), ShouldBeTrue)
				So(res.Error, ShouldBeEmpty)
				So(res.Pose, ShouldEqual, string(p))
				So(res.Indicators, shouldBeBoundedScores)
				So(res.Feedback, ShouldNotBeEmpty)
				So(res.GlobalScore, ShouldNotBeNil)
				So(*res.GlobalScore, ShouldBeGreaterThanOrEqualTo, 80)
				So(res.Priority, ShouldNotBeNil)
				So(res.SkillLevel, ShouldNotBeEmpty)
				So(res.Stability, ShouldBeNil)
			})
		}
	})
}

func TestEngineIndicatorNames(t *testing.T) {
	want := map[analysis.Pose][]string{
		analysis.Downdog:  {"alignment", "shoulder_opening", "leg_extension", "symmetry", "head_position"},
		analysis.Plank:    {"alignment", "core_strength", "symmetry", "shoulder_position"},
		analysis.Tree:     {"alignment", "foot_height", "hip_opening", "shoulder_level"},
		analysis.Warrior2: {"arms_alignment", "front_knee_angle", "knee_flexion_quality", "knee_ankle_alignment", "hip_opening", "shoulder_level"},
		analysis.Goddess:  {"stance_width", "squat_depth", "knee_angle", "knee_alignment", "back_position", "symmetry"},
	}
	engine := analysis.NewEngine()
	for p, names := range want {
		t.Run(string(p), func(t *testing.T) {
			res := engine.Analyze(string(p), reference(p))
			if len(res.Indicators) != len(names) {
				t.Fatalf("expected %d indicators, got %v", len(names), res.Indicators)
			}
			for _, n := range names {
				if _, ok := res.Indicators[n]; !ok {
					t.Errorf("missing indicator %q", n)
				}
			}
		})
	}
}

func TestEngineReferenceValues(t *testing.T) {
	Convey("Given the reference poses", t, func() {
		engine := analysis.NewEngine()

		Convey("When analyzing warrior II", func() {
			res := engine.Analyze("warrior2", reference(analysis.Warrior2))

			Convey("Then the bent left knee is measured at 90 degrees", func() {
				So(res.Measurements["front_knee_angle"], ShouldEqual, 90)
				So(res.Indicators["front_knee_angle"], ShouldEqual, 90)
				So(res.Indicators["knee_flexion_quality"], ShouldEqual, 100)
				So(res.Indicators["hip_opening"], ShouldEqual, 60)
				So(*res.GlobalScore, ShouldEqual, 91.7)
				So(res.Priority.Name, ShouldEqual, "hip_opening")
				So(res.Feedback, ShouldContain, "✓✓ Front knee bent to a perfect 90°!")
			})
		})

		Convey("When analyzing tree", func() {
			res := engine.Analyze("tree", reference(analysis.Tree))

			Convey("Then the raised right knee opens the hip", func() {
				So(res.Indicators["hip_opening"], ShouldEqual, 84)
				So(res.Indicators["foot_height"], ShouldEqual, 100)
				So(res.Indicators["alignment"], ShouldEqual, 100)
				So(*res.GlobalScore, ShouldEqual, 96)
				So(res.SkillLevel, ShouldEqual, scoring.SkillExpert)
			})
		})

		Convey("When analyzing goddess", func() {
			res := engine.Analyze("goddess", reference(analysis.Goddess))

			Convey("Then the knee angle is kept as a measurement", func() {
				So(res.Measurements["knee_angle"], ShouldEqual, 90)
				So(res.Indicators["squat_depth"], ShouldEqual, 100)
				So(res.Indicators["stance_width"], ShouldEqual, 100)
			})
		})

		Convey("When analyzing downdog", func() {
			res := engine.Analyze("downdog", reference(analysis.Downdog))

			Convey("Then the head position reflects the nose offset", func() {
				So(res.Indicators["head_position"], ShouldEqual, 90)
				So(res.Indicators["alignment"], ShouldEqual, 100)
				So(res.Priority.Name, ShouldEqual, "head_position")
				So(res.Priority.ImprovementNeeded, ShouldEqual, scoring.ImprovementMinimal)
			})
		})
	})
}

func TestEngineFaults(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := analysis.NewEngine()

		Convey("When the pose is unknown", func() {
			res := engine.Analyze("headstand", reference(analysis.Plank))

			Convey("Then the result carries only the pose and an error", func() {
				So(res.OK(), ShouldBeFalse)
				So(res.Pose, ShouldEqual, "headstand")
				So(res.Error, ShouldNotBeEmpty)
				So(res.Indicators, ShouldBeNil)
				So(res.Feedback, ShouldBeNil)
				So(res.GlobalScore, ShouldBeNil)
				So(res.Priority, ShouldBeNil)
			})
		})

		Convey("When a landmark is not finite", func() {
			lm := reference(analysis.Plank)
			lm[landmark.LeftHip].Y = math.NaN()
			res := engine.Analyze("plank", lm)

			Convey("Then the result is an error", func() {
				So(res.OK(), ShouldBeFalse)
				So(res.Error, ShouldContainSubstring, "invalid landmarks")
			})
		})

		Convey("When a frame is not finite", func() {
			bad := reference(analysis.Plank)
			bad[landmark.Nose].X = math.Inf(1)
			res := engine.Analyze("plank", reference(analysis.Plank),
				analysis.WithFrames([]landmark.Set{reference(analysis.Plank), bad}))

			Convey("Then the result names the frame", func() {
				So(res.OK(), ShouldBeFalse)
				So(res.Error, ShouldContainSubstring, "frame 1")
			})
		})

		Convey("When the only frame is not finite", func() {
			bad := reference(analysis.Plank)
			bad[landmark.Nose].X = math.NaN()
			res := engine.Analyze("plank", reference(analysis.Plank),
				analysis.WithFrames([]landmark.Set{bad}))

			Convey("Then it is ignored like any single frame", func() {
				So(res.OK(), ShouldBeTrue)
				So(res.Stability, ShouldBeNil)
				So(res.GlobalScore, ShouldNotBeNil)
			})
		})
	})
}

func TestEngineDegenerateInput(t *testing.T) {
	Convey("Given landmarks that all coincide at one point", t, func() {
		var lm landmark.Set
		for i := range lm {
			lm[i] = landmark.Landmark{X: 0.5, Y: 0.5, Z: 0, Visibility: 1}
		}
		engine := analysis.NewEngine()

		Convey("Then every analyzer still returns a bounded indicator set", func() {
			for _, p := range engine.Poses() {
				res := engine.Analyze(string(p), lm)
				So(res.OK(), ShouldBeTrue)
				So(res.Indicators, ShouldNotBeEmpty)
				So(res.Indicators, shouldBeBoundedScores)
				So(math.IsNaN(*res.GlobalScore), ShouldBeFalse)
			}
		})
	})

	Convey("Given random, extreme and non-finite landmarks", t, func() {
		rng := rand.New(rand.NewSource(7))
		sets := make([]landmark.Set, 0, 64)
		for n := 0; n < 60; n++ {
			var lm landmark.Set
			for i := range lm {
				lm[i] = landmark.Landmark{
					X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: rng.Float64() - 0.5,
					Visibility: rng.Float64(),
				}
			}
			sets = append(sets, lm)
		}
		var huge, nan landmark.Set
		for i := range huge {
			huge[i] = landmark.Landmark{X: float64(i) * 1e6, Y: -float64(i) * 1e6}
			nan[i] = landmark.Landmark{X: math.NaN(), Y: math.Inf(-1), Z: math.NaN()}
		}
		sets = append(sets, huge, nan)

		Convey("Then analyzers never leak NaN or out-of-range indicators", func() {
			for _, p := range analysis.Poses() {
				for _, lm := range sets {
					ind, meas, _ := p.Analyzer().Analyze(lm)
					So(ind, shouldBeBoundedScores)
					for _, v := range meas {
						So(math.IsNaN(v) || math.IsInf(v, 0), ShouldBeFalse)
					}
				}
			}
		})
	})
}

func TestEngineStability(t *testing.T) {
	Convey("Given an engine and plank frames", t, func() {
		engine := analysis.NewEngine()
		still := reference(analysis.Plank)

		Convey("When a single frame is supplied", func() {
			res := engine.Analyze("plank", still, analysis.WithFrames([]landmark.Set{still}))

			Convey("Then stability is absent", func() {
				So(res.Stability, ShouldBeNil)
				_, ok := res.Scores()["stability"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When two identical frames are supplied", func() {
			res := engine.Analyze("plank", still, analysis.WithFrames([]landmark.Set{still, still}))

			Convey("Then stability is 100 and joins the aggregation", func() {
				So(res.Stability, ShouldNotBeNil)
				So(*res.Stability, ShouldEqual, 100)
				So(res.Scores()["stability"], ShouldEqual, 100)
				So(res.Feedback[len(res.Feedback)-1], ShouldEqual, "✓✓ Excellent stability!")
				_, inIndicators := res.Indicators["stability"]
				So(inIndicators, ShouldBeFalse)
			})
		})

		Convey("When the anchors jump between frames", func() {
			moved := still
			for _, idx := range []int{landmark.Nose, landmark.LeftShoulder, landmark.RightShoulder, landmark.LeftHip, landmark.RightHip} {
				moved[idx].X += 0.5
			}
			res := engine.Analyze("plank", still, analysis.WithFrames([]landmark.Set{still, moved, still}))

			Convey("Then stability drops to zero without going negative", func() {
				So(*res.Stability, ShouldEqual, 0)
				So(strings.HasPrefix(res.Feedback[len(res.Feedback)-1], "⚠️"), ShouldBeTrue)
				So(res.Priority.Name, ShouldEqual, "stability")
			})
		})
	})
}

func TestStability(t *testing.T) {
	Convey("Given frame sequences", t, func() {
		lm := reference(analysis.Goddess)

		So(analysis.Stability(nil), ShouldEqual, 100)
		So(analysis.Stability([]landmark.Set{lm}), ShouldEqual, 100)
		So(analysis.Stability([]landmark.Set{lm, lm, lm}), ShouldEqual, 100)

		Convey("When every anchor moves by 0.01 once", func() {
			moved := lm
			for _, idx := range []int{landmark.Nose, landmark.LeftShoulder, landmark.RightShoulder, landmark.LeftHip, landmark.RightHip} {
				moved[idx].Y += 0.01
			}
			Convey("Then the score falls by 500 times the mean movement", func() {
				So(analysis.Stability([]landmark.Set{lm, moved}), ShouldAlmostEqual, 95, 1e-9)
				So(analysis.Stability([]landmark.Set{lm, moved, moved}), ShouldAlmostEqual, 97.5, 1e-9)
			})
		})
	})
}

func TestEngineOptions(t *testing.T) {
	Convey("Given aggregates are disabled", t, func() {
		res := analysis.NewEngine().Analyze("tree", reference(analysis.Tree), analysis.WithoutAggregates())

		Convey("Then only indicators and feedback are returned", func() {
			So(res.OK(), ShouldBeTrue)
			So(res.GlobalScore, ShouldBeNil)
			So(res.Priority, ShouldBeNil)
			So(res.SkillLevel, ShouldBeEmpty)
		})
	})
}

func TestAnalyzerFeedback(t *testing.T) {
	Convey("Given a plank with knees on the floor", t, func() {
		lm := reference(analysis.Plank)
		lm[landmark.LeftKnee].Y = lm[landmark.LeftAnkle].Y
		lm[landmark.RightKnee].Y = lm[landmark.RightAnkle].Y
		ind, _, feedback := analysis.Plank.Analyzer().Analyze(lm)

		Convey("Then core strength drops to 40 with two hints", func() {
			So(ind["core_strength"], ShouldEqual, 40)
			So(feedback, ShouldContain, "💡 Knees on the floor detected. A modified plank is a good start!")
			So(feedback, ShouldContain, "💪 To progress, try 10 seconds on your toes.")
		})
	})

	Convey("Given a plank with the hips raised above the shoulders", t, func() {
		lm := reference(analysis.Plank)
		lm[landmark.LeftHip].Y = 0.2
		lm[landmark.RightHip].Y = 0.2
		ind, _, feedback := analysis.Plank.Analyzer().Analyze(lm)

		Convey("Then alignment is poor and the hips are called out", func() {
			So(ind["alignment"], ShouldBeLessThan, 70)
			So(feedback[0], ShouldEqual, "⚠️ Hips too high. Engage the core and lower them a little.")
		})
	})

	Convey("Given a downdog with the hips flattened into a line", t, func() {
		lm := reference(analysis.Downdog)
		lm[landmark.LeftHip].X, lm[landmark.LeftHip].Y = 0.425, 0.575
		lm[landmark.RightHip] = lm[landmark.LeftHip]
		ind, _, feedback := analysis.Downdog.Analyzer().Analyze(lm)

		Convey("Then alignment falls to 50", func() {
			So(ind["alignment"], ShouldEqual, 50)
			So(feedback[0], ShouldEqual, "⚠️ Hips too high or back too rounded.")
		})
	})

	Convey("Given a goddess with a narrow stance", t, func() {
		lm := reference(analysis.Goddess)
		lm[landmark.LeftAnkle].X = 0.42
		lm[landmark.RightAnkle].X = 0.58
		ind, _, feedback := analysis.Goddess.Analyzer().Analyze(lm)

		Convey("Then stance width drops to 60", func() {
			So(ind["stance_width"], ShouldEqual, 60)
			So(feedback[0], ShouldEqual, "💡 Widen your stance (wider than the shoulders).")
		})
	})
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := analysis.NewEngine()
	want := engine.Analyze("warrior2", reference(analysis.Warrior2))

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := engine.Analyze("warrior2", reference(analysis.Warrior2))
			if *got.GlobalScore != *want.GlobalScore {
				errs <- "global score differs between concurrent calls"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
