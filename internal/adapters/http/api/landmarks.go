package api

import (
	"fmt"

	"github.com/okian/asana/internal/domain/landmark"
)

// Rows is the wire form of a landmark set: 33 rows of [x, y, z, visibility].
type Rows = [][]float64

func parseLandmarks(rows Rows, frames []Rows) (landmark.Set, []landmark.Set, error) {
	lm, err := landmark.FromRows(rows)
	if err != nil {
		return landmark.Set{}, nil, fmt.Errorf("landmarks: %w", err)
	}
	if len(frames) == 0 {
		return lm, nil, nil
	}
	out := make([]landmark.Set, len(frames))
	for i, f := range frames {
		if out[i], err = landmark.FromRows(f); err != nil {
			return landmark.Set{}, nil, fmt.Errorf("frames[%d]: %w", i, err)
		}
	}
	return lm, out, nil
}
