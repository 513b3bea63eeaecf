package recommend

import (
	"strings"

	"github.com/okian/asana/internal/domain/scoring"
)

// motivations is keyed by improvement tier then skill level. {indicator}
// is replaced with the indicator name.
var motivations = map[scoring.Improvement]map[scoring.SkillLevel]string{
	scoring.ImprovementCritical: {
		scoring.SkillBeginner:     "🌱 Don't get discouraged! {indicator} will improve with regular practice.",
		scoring.SkillIntermediate: "💪 You have found your weak spot. That is the first step to improving!",
		scoring.SkillAdvanced:     "🎯 Even experts have things to refine. Focus on {indicator}.",
	},
	scoring.ImprovementImportant: {
		scoring.SkillBeginner:     "✨ Great start! Work on {indicator} and you will progress fast.",
		scoring.SkillIntermediate: "🔥 You are on the right track. A bit more focus on {indicator} will make the difference.",
		scoring.SkillAdvanced:     "⭐ Refine {indicator} to reach full mastery.",
	},
	scoring.ImprovementModerate: {
		scoring.SkillBeginner:     "👏 Very good! A few adjustments to {indicator} and it will be perfect.",
		scoring.SkillIntermediate: "🌟 Excellent progress! Polish {indicator} to excel.",
		scoring.SkillAdvanced:     "🏆 Almost perfect! A few micro-adjustments to {indicator}.",
	},
	scoring.ImprovementMinimal: {
		scoring.SkillBeginner:     "🎉 Impressive! Keep {indicator} at this level.",
		scoring.SkillIntermediate: "🔥 Outstanding performance! Keep up the excellence.",
		scoring.SkillAdvanced:     "👑 Total mastery! You could teach this pose.",
	},
}

func motivation(tier scoring.Improvement, skill scoring.SkillLevel, indicator string) string {
	if skill == scoring.SkillExpert {
		skill = scoring.SkillAdvanced
	}
	msg, ok := motivations[tier][skill]
	if !ok {
		return fallbackMotivation
	}
	return strings.ReplaceAll(msg, "{indicator}", indicator)
}
