package llm

import (
	"strings"

	"ats-analyzer/internal/shared/util"
)

// Output keys the model is instructed to emit.
const (
	KeyMatch           = "JD Match"
	KeyMissingKeywords = "MissingKeywords"
	KeyProfileSummary  = "Profile Summary"
)

const analysisPromptTemplate = `Act as an expert ATS (Applicant Tracking System) specialist with deep expertise in:
- Technical fields
- Software engineering
- Data science
- Data analysis
- Big data engineering

Evaluate the following resume against the job description. Consider that the job market
is highly competitive. Provide detailed feedback for resume improvement.

Resume:
{{RESUME_TEXT}}

Job Description:
{{JOB_DESCRIPTION}}

Give response in ONLY this JSON format:
{
    "JD Match": "percentage between 0-100",
    "MissingKeywords": ["keyword1", "keyword2", ...],
    "Profile Summary": "detailed analysis of the match and specific improvement suggestions"
}
`

// BuildAnalysisPrompt embeds both inputs verbatim into the fixed ATS rubric.
// Substitution is a single pass over the template, so placeholder text inside
// the inputs is left alone.
func BuildAnalysisPrompt(resumeText, jobDescription string) string {
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
	return replacer.Replace(analysisPromptTemplate)
}

// PromptHash identifies a prompt in logs without recording its content.
func PromptHash(prompt string) string {
	return util.HashBytes([]byte(prompt))
}
