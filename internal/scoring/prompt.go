package scoring

// evaluationPrompt instructs the model to grade an item across the fixed
// quality dimensions and respond with JSON only.
const evaluationPrompt = `You are a strict content reviewer for a technical question-and-answer catalog.
Grade the supplied item on each dimension from 0 to 100 and give one sentence of feedback per dimension.

Dimensions:
- technicalAccuracy: is the answer factually correct for the stated channel?
- clarity: is the answer easy to follow for the stated difficulty level?
- completeness: does the answer cover the essential points the question asks for?
- practicalRelevance: would a practitioner in this channel actually need this?
- structureQuality: is the item well organized (question, answer, explanation)?
- difficultyCalibration: does the content match the declared difficulty?
- voiceReadiness: only when the item is marked voice suitable, how well would the answer work read aloud?

Respond with JSON only, no prose, in this shape:
{
  "technicalAccuracy": {"score": 0, "feedback": ""},
  "clarity": {"score": 0, "feedback": ""},
  "completeness": {"score": 0, "feedback": ""},
  "practicalRelevance": {"score": 0, "feedback": ""},
  "structureQuality": {"score": 0, "feedback": ""},
  "difficultyCalibration": {"score": 0, "feedback": ""},
  "voiceReadiness": {"score": 0, "feedback": ""},
  "overallAssessment": "",
  "topImprovements": ["", ""]
}
Omit voiceReadiness when the item is not voice suitable.`
