package evaluation

import (
	"bytes"
	"text/template"
)

const systemPrompt = `You are a senior technical interviewer evaluating a candidate's answer.

Scoring guidelines:
- 0-2: Completely wrong or irrelevant
- 3-4: Shows some awareness but significant gaps
- 5-6: Adequate understanding, missing key details
- 7-8: Good answer with solid understanding
- 9-10: Excellent, comprehensive answer

Respond with JSON only: {"score": <number 0-10>, "feedback": "<brief 1-2 sentence constructive feedback>"}.
No markdown, no code fences.`

var userTemplate = template.Must(template.New("evaluation").Parse(`Position: {{.Difficulty}}-level {{.Role}}

Question: "{{.Question}}"
Candidate's answer: "{{.Answer}}"

Be fair but rigorous for a {{.Difficulty}}-level candidate.`))

func buildUserMessage(in Input) (string, error) {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}
