package scoring

import "context"

// DimensionScore is one evaluated quality dimension.
type DimensionScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Dimensions is the typed result contract of the external evaluator.
// Absent dimensions stay nil and are excluded from weighting.
type Dimensions struct {
	TechnicalAccuracy     *DimensionScore `json:"technicalAccuracy"`
	Clarity               *DimensionScore `json:"clarity"`
	Completeness          *DimensionScore `json:"completeness"`
	PracticalRelevance    *DimensionScore `json:"practicalRelevance"`
	StructureQuality      *DimensionScore `json:"structureQuality"`
	DifficultyCalibration *DimensionScore `json:"difficultyCalibration"`
	VoiceReadiness        *DimensionScore `json:"voiceReadiness"`
	OverallAssessment     string          `json:"overallAssessment"`
	TopImprovements       []string        `json:"topImprovements"`
}

// EvaluationRequest carries the item fields the evaluator sees.
type EvaluationRequest struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
	Channel     string `json:"channel"`
	SubChannel  string `json:"subChannel,omitempty"`
	Difficulty  string `json:"difficulty"`
}

// Evaluator is the narrow boundary to the external scoring service. All
// parsing and validation of the untrusted response happens behind it.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvaluationRequest) (Dimensions, error)
}

type weightedDimension struct {
	name   string
	weight float64
	score  func(Dimensions) *DimensionScore
}

// dimensionWeights are the fixed folding weights. VoiceReadiness only
// participates when the evaluator returned it; the mean normalizes over
// the dimensions actually present.
var dimensionWeights = []weightedDimension{
	{"technicalAccuracy", 0.25, func(d Dimensions) *DimensionScore { return d.TechnicalAccuracy }},
	{"clarity", 0.15, func(d Dimensions) *DimensionScore { return d.Clarity }},
	{"completeness", 0.20, func(d Dimensions) *DimensionScore { return d.Completeness }},
	{"practicalRelevance", 0.15, func(d Dimensions) *DimensionScore { return d.PracticalRelevance }},
	{"structureQuality", 0.10, func(d Dimensions) *DimensionScore { return d.StructureQuality }},
	{"difficultyCalibration", 0.10, func(d Dimensions) *DimensionScore { return d.DifficultyCalibration }},
	{"voiceReadiness", 0.05, func(d Dimensions) *DimensionScore { return d.VoiceReadiness }},
}
