package questiongen

import (
	"bytes"
	"text/template"
)

const mainSystemPrompt = `You are a senior technical interviewer. You ask one clear, practical question at a time.
Respond with ONLY the question text, nothing else. No numbering, no prefix.`

const followUpSystemPrompt = `You are a senior technical interviewer. You probe deeper into a candidate's previous answer.
Respond with ONLY the follow-up question text, nothing else.`

var mainTemplate = template.Must(template.New("main").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(
	`Interview: {{.InterviewType}} interview for a {{.Effective}}-level {{.Role}} position.
{{if .History}}
Previous questions and scores in this session:
{{range $i, $q := .History}}Q{{inc $i}}: "{{$q.Question}}" (Score: {{$q.Score}}/10)
{{end}}
Generate a NEW question that hasn't been asked yet. Adjust complexity based on candidate performance.
{{else}}
Generate the first question for this interview.
{{end}}
Rules:
- For {{.Effective}} level, ask appropriately challenging questions
- Question should be relevant to {{.Role}} and the {{.InterviewType}} interview type
- Be specific and practical, not overly abstract
- Question should be answerable in 1-3 minutes`))

var followUpTemplate = template.Must(template.New("followup").Parse(
	`Position: {{.Difficulty}}-level {{.Role}}

The candidate was asked: "{{.Question}}"
Their answer was: "{{.Answer}}"

Generate ONE follow-up question that:
- Probes deeper into their answer
- Tests understanding beyond surface-level knowledge
- Is directly related to what they said
- Can be answered in 1-2 minutes`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
