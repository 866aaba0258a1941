package service

import (
	"sort"

	"golang.org/x/text/cases"

	speakersdom "minutes/internal/services/speakers/domain"
	"minutes/internal/services/voiceid/domain"
)

var fold = cases.Fold()

// MergePredictions collapses ranked candidates into one prediction per
// distinct name. Names are grouped case-folded, each group keeps its best
// score and the casing of its first appearance, and nothing comes out
// user selected. The result is ordered best first
func MergePredictions(cands []domain.Candidate) []speakersdom.PredictedName {
	byName := make(map[string]int, len(cands))
	out := make([]speakersdom.PredictedName, 0, len(cands))

	for _, c := range cands {
		if c.Name == "" {
			continue
		}
		key := fold.String(c.Name)
		if i, ok := byName[key]; ok {
			if c.Score > out[i].Score {
				out[i].Score = c.Score
				out[i].SpeakerID = c.SpeakerID
				out[i].EmbeddingID = c.EmbeddingID
			}
			continue
		}
		byName[key] = len(out)
		out = append(out, speakersdom.PredictedName{
			Name:        c.Name,
			Score:       c.Score,
			SpeakerID:   c.SpeakerID,
			EmbeddingID: c.EmbeddingID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
