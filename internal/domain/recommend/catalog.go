package recommend

// defaultCatalog maps pose -> indicator -> targeted exercise.
func defaultCatalog() map[string]map[string]Exercise {
	return map[string]map[string]Exercise{
		"downdog": {
			"alignment": {
				Title:       "Wall Shoulder Mobility",
				Description: "Improve alignment by working on shoulder mobility",
				Duration:    "3 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Face a wall with arms stretched overhead",
					"Walk the hands up the wall and lean forward",
					"Keep the back flat and press the chest towards the floor",
					"Hold 30 seconds, repeat 5 times",
				},
				Benefit: "Improves shoulder flexibility and back alignment",
			},
			"shoulder_opening": {
				Title:       "Bent-Knee Downward Dog",
				Description: "A variation that builds shoulder opening",
				Duration:    "2 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Come into downward-facing dog",
					"Bend the knees generously",
					"Focus on pressing the hands into the floor",
					"Lift the hips towards the ceiling",
					"Hold for 10 breaths",
				},
				Benefit: "Lets you work on shoulder opening without hamstring tension",
			},
			"leg_extension": {
				Title:       "Seated Hamstring Stretch",
				Description: "Prepare the legs for a fuller extension",
				Duration:    "4 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Sit with the legs stretched out in front",
					"Inhale and lengthen the spine",
					"Exhale and fold gently forward",
					"Hold the feet or shins",
					"Stay 1 minute per side",
				},
				Benefit: "Increases hamstring flexibility so the legs can straighten",
			},
			"symmetry": {
				Title:       "Downward Dog With Visual Markers",
				Description: "Work on symmetry using reference points",
				Duration:    "2 minutes",
				Difficulty:  "intermediate",
				Steps: []string{
					"Use a mat with parallel lines",
					"Place the hands the same distance from each edge",
					"Check that the feet are placed symmetrically too",
					"Hold while breathing deeply",
					"Adjust when needed",
				},
				Benefit: "Builds body awareness and left-right balance",
			},
		},
		"plank": {
			"alignment": {
				Title:       "Plank With a Stick Along the Back",
				Description: "Use a prop to feel a perfectly straight line",
				Duration:    "3 sets of 30 seconds",
				Difficulty:  "intermediate",
				Steps: []string{
					"Lay a yoga stick or ruler along your back",
					"It should touch the head, upper back and pelvis",
					"Come into plank",
					"Keep contact at all three points",
					"Adjust if the stick lifts off",
				},
				Benefit: "Immediate tactile feedback for a straight line",
			},
			"core_strength": {
				Title:       "Modified Plank Progression",
				Description: "Build core strength step by step",
				Duration:    "5 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Week 1: plank on the knees, 3×30 seconds",
					"Week 2: plank on the knees, 3×45 seconds",
					"Week 3: full plank, 3×20 seconds",
					"Week 4: full plank, 3×30 seconds",
					"Keep increasing gradually",
				},
				Benefit: "Develops core strength safely and progressively",
			},
			"shoulder_position": {
				Title:       "High Plank Shoulder Strengthening",
				Description: "Stabilize the shoulders for a better plank",
				Duration:    "4 minutes",
				Difficulty:  "intermediate",
				Steps: []string{
					"High plank with the hands under the shoulders",
					"Push the floor away to round the upper back",
					"Return to neutral",
					"Repeat 10 times",
					"Do 3 sets",
				},
				Benefit: "Activates the stabilizing muscles of the shoulders",
			},
		},
		"tree": {
			"alignment": {
				Title:       "Progressive Single-Leg Balance",
				Description: "Develop balance one stage at a time",
				Duration:    "5 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Level 1: standing, lift one heel with toes down, 30s",
					"Level 2: foot on the ankle, 30s",
					"Level 3: foot on the calf, 30s",
					"Level 4: foot on the inner thigh, 30s",
					"Repeat on each side, 2 sets",
				},
				Benefit: "A gentle progression towards balance and stability",
			},
			"hip_opening": {
				Title:       "Seated Butterfly (Baddha Konasana)",
				Description: "Open the hips to place the foot more easily",
				Duration:    "3 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Sit with the soles of the feet together",
					"Draw the feet towards the pelvis",
					"Let the knees drop to the sides",
					"Keep the back straight",
					"Hold 2 to 3 minutes breathing deeply",
				},
				Benefit: "Increases hip mobility for a more comfortable tree pose",
			},
			"foot_height": {
				Title:       "Focal Point Meditation (Drishti)",
				Description: "Sharpen concentration to hold the balance longer",
				Duration:    "5 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Pick a fixed point in front of you",
					"Stand in mountain pose (Tadasana)",
					"Hold your gaze on the point",
					"Breathe calmly for 1 minute",
					"Then practice tree pose",
				},
				Benefit: "Builds the focus that balance depends on",
			},
		},
		"warrior2": {
			"arms_alignment": {
				Title:       "Warrior II Arms Against a Wall",
				Description: "Use a wall to perfect the line of the arms",
				Duration:    "3 minutes",
				Difficulty:  "intermediate",
				Steps: []string{
					"Stand in warrior II next to a wall",
					"Let the back arm touch the wall",
					"Make sure the arms form one straight line",
					"Hold 1 minute per side",
					"Repeat twice",
				},
				Benefit: "Tactile feedback for perfectly aligned arms",
			},
			"knee_flexion_quality": {
				Title:       "Quadriceps Strengthening Squats",
				Description: "Strengthen the legs to reach a 90° bend",
				Duration:    "5 minutes",
				Difficulty:  "intermediate",
				Steps: []string{
					"Deep squats: 3 sets of 15",
					"Forward lunges: 3 sets of 10 per leg",
					"Wall sit at 90°: 3×30 seconds",
					"Rest 30 seconds between sets",
				},
				Benefit: "Builds the thigh strength to hold the knee at 90°",
			},
			"hip_opening": {
				Title:       "Low Lunge (Anjaneyasana)",
				Description: "Open the hips for better rotation",
				Duration:    "4 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Lunge forward with the back knee down",
					"Gently press the pelvis forward",
					"Raise the arms to the sky",
					"Hold 1 minute per side",
					"Repeat twice",
				},
				Benefit: "Improves hip mobility for a fully open warrior II",
			},
		},
		"goddess": {
			"squat_depth": {
				Title:       "Goddess Squat Progression",
				Description: "Sink lower, one stage at a time",
				Duration:    "4 minutes",
				Difficulty:  "intermediate",
				Steps: []string{
					"Week 1: quarter squat, hold 30s",
					"Week 2: half squat, hold 30s",
					"Week 3: three-quarter squat, hold 30s",
					"Week 4: full squat, hold 30s",
					"3 repetitions per level",
				},
				Benefit: "A safe progression to the ideal depth",
			},
			"knee_alignment": {
				Title:       "Banded Squats",
				Description: "Correct knee tracking against resistance",
				Duration:    "3 minutes",
				Difficulty:  "intermediate",
				Steps: []string{
					"Loop a resistance band around the thighs",
					"Take the goddess stance with feet wide",
					"The band pulls the knees inwards",
					"Resist by pressing the knees out",
					"10 repetitions, 3 sets",
				},
				Benefit: "Strengthens the muscles that keep knees over the feet",
			},
			"stance_width": {
				Title:       "Seated Adductor Stretch",
				Description: "Gain flexibility for a wider stance",
				Duration:    "5 minutes",
				Difficulty:  "beginner",
				Steps: []string{
					"Sit with the legs wide in a V",
					"Keep the back straight",
					"Fold gently forward",
					"Hold 2 minutes",
					"Then lean towards each leg, 1 minute each",
				},
				Benefit: "Increases adductor flexibility for a wider stance",
			},
		},
	}
}
