package scoring_test

import (
	"testing"

	scoring "github.com/okian/asana/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGlobalScore(t *testing.T) {
	Convey("Given indicator sets", t, func() {
		Convey("When the values are 100 and 0", func() {
			got := scoring.GlobalScore(map[string]float64{"a": 100, "b": 0})

			Convey("Then the global score is exactly 50", func() {
				So(got, ShouldEqual, 50.0)
			})
		})

		Convey("When the mean has more than one decimal", func() {
			got := scoring.GlobalScore(map[string]float64{"a": 100, "b": 75, "c": 60})

			Convey("Then it is rounded to one decimal", func() {
				So(got, ShouldEqual, 78.3)
			})
		})

		Convey("When the mean lands exactly on a half tenth", func() {
			got := scoring.GlobalScore(map[string]float64{"a": 0.5, "b": 0})

			Convey("Then it rounds to the even digit", func() {
				So(got, ShouldEqual, 0.2)
			})
		})

		Convey("When the set is empty", func() {
			Convey("Then the global score is 0", func() {
				So(scoring.GlobalScore(nil), ShouldEqual, 0)
				So(scoring.GlobalScore(map[string]float64{}), ShouldEqual, 0)
			})
		})
	})
}

func TestPriorityIndicator(t *testing.T) {
	Convey("Given indicator sets", t, func() {
		Convey("When alignment is the weakest indicator", func() {
			p, ok := scoring.PriorityIndicator(map[string]float64{"alignment": 40, "core_strength": 90})

			Convey("Then alignment is the priority with a critical tier", func() {
				So(ok, ShouldBeTrue)
				So(p.Name, ShouldEqual, "alignment")
				So(p.Score, ShouldEqual, 40)
				So(p.ImprovementNeeded, ShouldEqual, scoring.ImprovementCritical)
			})
		})

		Convey("When two indicators share the minimum", func() {
			in := map[string]float64{"symmetry": 70, "head_position": 70, "alignment": 95}

			Convey("Then the smallest name wins every time", func() {
				for i := 0; i < 20; i++ {
					p, ok := scoring.PriorityIndicator(in)
					So(ok, ShouldBeTrue)
					So(p.Name, ShouldEqual, "head_position")
					So(p.ImprovementNeeded, ShouldEqual, scoring.ImprovementModerate)
				}
			})
		})

		Convey("When the set is empty", func() {
			p, ok := scoring.PriorityIndicator(nil)

			Convey("Then no priority is reported", func() {
				So(ok, ShouldBeFalse)
				So(p, ShouldResemble, scoring.Priority{})
			})
		})
	})
}

func TestImprovementFor(t *testing.T) {
	cases := []struct {
		score float64
		want  scoring.Improvement
	}{
		{100, scoring.ImprovementMinimal},
		{85, scoring.ImprovementMinimal},
		{84.9, scoring.ImprovementModerate},
		{70, scoring.ImprovementModerate},
		{69.9, scoring.ImprovementImportant},
		{50, scoring.ImprovementImportant},
		{49.9, scoring.ImprovementCritical},
		{0, scoring.ImprovementCritical},
	}
	for _, tc := range cases {
		if got := scoring.ImprovementFor(tc.score); got != tc.want {
			t.Errorf("ImprovementFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSkillLevelFor(t *testing.T) {
	cases := []struct {
		score float64
		want  scoring.SkillLevel
	}{
		{59.9, scoring.SkillBeginner},
		{60.0, scoring.SkillIntermediate},
		{79.9, scoring.SkillIntermediate},
		{80.0, scoring.SkillAdvanced},
		{89.9, scoring.SkillAdvanced},
		{90.0, scoring.SkillExpert},
		{0, scoring.SkillBeginner},
	}
	for _, tc := range cases {
		t.Run(string(tc.want), func(t *testing.T) {
			if got := scoring.SkillLevelFor(tc.score); got != tc.want {
				t.Errorf("SkillLevelFor(%v) = %q, want %q", tc.score, got, tc.want)
			}
		})
	}
}

func TestParseSkillLevel(t *testing.T) {
	Convey("Given skill level names", t, func() {
		So(scoring.ParseSkillLevel("advanced"), ShouldEqual, scoring.SkillAdvanced)
		So(scoring.ParseSkillLevel("expert"), ShouldEqual, scoring.SkillExpert)
		So(scoring.ParseSkillLevel(""), ShouldEqual, scoring.SkillBeginner)
		So(scoring.ParseSkillLevel("guru"), ShouldEqual, scoring.SkillBeginner)
	})
}

func TestRound(t *testing.T) {
	Convey("Given values on and near a half tenth", t, func() {
		cases := []struct{ in, want float64 }{
			{0.25, 0.2},
			{0.75, 0.8},
			{12.25, 12.2},
			{0.35, 0.3},
			{0.45, 0.5},
			{78.333, 78.3},
			{99.96, 100},
			{-0.25, -0.2},
		}
		for _, c := range cases {
			So(scoring.Round(c.in), ShouldEqual, c.want)
		}
	})
}
