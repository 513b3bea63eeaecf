package loadgen

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/landmark"
)

// Jitter applied to reference landmarks, in image-relative units. Each user
// gets a fixed steadiness between the bounds so that scores spread out.
const (
	minJitter = 0.002
	maxJitter = 0.06
)

// Generator builds synthetic sessions from the reference poses.
type Generator struct {
	rng    *rand.Rand
	poses  []analysis.Pose
	refs   map[analysis.Pose]landmark.Set
	users  []string
	jitter map[string]float64
}

// NewGenerator creates a generator for numUsers users.
func NewGenerator(numUsers int, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := &Generator{
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		poses:  analysis.Poses(),
		refs:   make(map[analysis.Pose]landmark.Set),
		jitter: make(map[string]float64, numUsers),
	}
	for _, p := range g.poses {
		if lm, ok := analysis.ReferenceLandmarks(p); ok {
			g.refs[p] = lm
		}
	}
	for i := 0; i < numUsers; i++ {
		id := uuid.NewString()
		g.users = append(g.users, id)
		g.jitter[id] = minJitter + g.rng.Float64()*(maxJitter-minJitter)
	}
	return g
}

// Generate returns n sessions. A share of them, given by duplicateRate,
// repeat the id and body of an earlier session.
func (g *Generator) Generate(n, frames int, duplicateRate float64) []Session {
	out := make([]Session, 0, n)
	for i := 0; i < n; i++ {
		if len(out) > 0 && g.rng.Float64() < duplicateRate {
			out = append(out, out[g.rng.IntN(len(out))])
			continue
		}
		out = append(out, g.session(frames))
	}
	return out
}

func (g *Generator) session(frames int) Session {
	user := g.users[g.rng.IntN(len(g.users))]
	pose := g.poses[g.rng.IntN(len(g.poses))]
	sigma := g.jitter[user]

	s := Session{
		SessionID:  uuid.NewString(),
		UserID:     user,
		Pose:       string(pose),
		Confidence: 0.6 + g.rng.Float64()*0.4,
		Landmarks:  g.perturb(g.refs[pose], sigma),
		TS:         time.Now().UTC().Format(time.RFC3339),
	}
	for i := 0; i < frames; i++ {
		s.Frames = append(s.Frames, g.perturb(g.refs[pose], sigma))
	}
	return s
}

func (g *Generator) perturb(lm landmark.Set, sigma float64) [][]float64 {
	rows := lm.Rows()
	for _, row := range rows {
		row[0] += g.rng.NormFloat64() * sigma
		row[1] += g.rng.NormFloat64() * sigma
	}
	return rows
}

// Users returns the generated user ids.
func (g *Generator) Users() []string {
	return append([]string(nil), g.users...)
}
