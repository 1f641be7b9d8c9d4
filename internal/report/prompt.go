package report

import (
	"bytes"
	"fmt"
	"text/template"
)

const systemPrompt = `You are a senior technical interviewer writing a performance report for a candidate who just finished a mock interview.
Be specific and actionable. Reference actual answers when possible.
Give exactly 3 strengths, 3 improvement areas, up to 2 improved sample answers drawn from the weakest answers, and 4 suggested topics.
Respond with JSON only. No markdown, no code fences.`

var userTemplate = template.Must(template.New("report").
	Funcs(template.FuncMap{
		"inc":  func(i int) int { return i + 1 },
		"one":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
	}).
	Parse(`Session Details:
- Role: {{.Role}}
- Difficulty: {{.Difficulty}}
- Interview Type: {{.InterviewType}}
- Average Score: {{one .Mean}}/10

Questions and Answers:
{{range $i, $e := .Entries}}
Q{{inc $i}}{{if $e.IsFollowUp}} (Follow-up){{end}}: "{{$e.Question}}"
Answer: "{{$e.Answer}}"
Score: {{$e.Score}}/10
Feedback: {{$e.Feedback}}
{{end}}`))

func buildUserMessage(in Input, mean float64) (string, error) {
	var buf bytes.Buffer
	err := userTemplate.Execute(&buf, struct {
		Input
		Mean float64
	}{in, mean})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
