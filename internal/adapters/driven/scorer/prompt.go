// Package scorer provides shared pieces of the scoring backends: the
// evaluation prompt, response parsing and the retry decorator.
package scorer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt builds the quality evaluation prompt for a piece of text.
// The backend must answer with a JSON object {"score": n, "reason": s}.
func Prompt(text string) string {
	return fmt.Sprintf(`You are a Linguistic Quality Assurance Specialist for Malayalam. Your task is to provide a critical and precise evaluation of the following text. Your primary goal is to identify and fail text that is semantically or logically incoherent. You must respond ONLY with a valid JSON object.

Follow this thought process step-by-step:
1.  **Fluency Analysis:** Read the text. Does it flow naturally in Malayalam?
2.  **Coherence Analysis:** This is the most important step. Do the sentences and paragraphs logically connect? Is it sensical?
3.  **Final Scoring:** Based on your analysis, assign a score from 1 to 10. Prioritize coherence above all else.

SCORING RUBRIC:
- **Score 8-10 (High Quality):** Fluent, fully coherent, and well-structured.
- **Score 6-7 (Acceptable Quality):** Generally fluent and coherent, may have minor stylistic issues.
- **Score 4-5 (Low Quality):** Difficult to read, contains grammatical errors OR a noticeable lack of logical coherence.
- **Score 1-3 (Garbage Quality):** Completely unacceptable, grammatically broken, semantically nonsensical, or not Malayalam.

Analyze the following text and provide your score and a brief, precise reason in the specified JSON format.

Text:
"""
%s
"""

JSON Response:
`, text)
}

// Response is the JSON object the prompt asks the model for.
type Response struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// ParseResponse extracts the scoring JSON from raw model output.
// Local models tend to wrap the object in prose, so everything outside
// the outermost braces is ignored.
func ParseResponse(raw string) (Response, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Response{}, fmt.Errorf("no JSON object in model output %q", truncate(raw, 80))
	}

	var resp Response
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err != nil {
		return Response{}, fmt.Errorf("decode scoring response: %w", err)
	}
	if resp.Score < 1 || resp.Score > 10 {
		return Response{}, fmt.Errorf("score %v outside 1-10 range", resp.Score)
	}
	if resp.Reason == "" {
		resp.Reason = "no reason provided"
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
