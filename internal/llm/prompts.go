package llm

import "google.golang.org/genai"

const jobTrackingSystemPrompt = "You are a helpful assistant for job tracking."

const extractPromptTemplate = `The user said: '%s'. Please extract any job-related information like job_id or job_name from the user's question.
Only report values the user actually mentioned. Leave a field null when it is not mentioned.`

const replyPromptTemplate = `The user asked: %s. Based on the database query, here is the relevant information: %s. Generate a polite and helpful response based on this information.`

const semanticSystemPrompt = `You evaluate rows of a job tracking table. Each row has a job_id, a job_name and a status.
Answer strictly in the requested JSON shape.`

const filterPromptTemplate = `Claim template: %s

For every row below, substitute the row's values into the placeholders of the claim and decide whether the claim is true.
Return the numbers of the rows for which it is true.

Rows:
%s`

const aggregatePromptTemplate = `Instruction: %s

Apply the instruction across all rows below, substituting each row's values for the placeholders, and answer in plain language.
Return your answer as the first element of "answers".

Rows:
%s`

var entitiesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"job_id": {
			Type:        genai.TypeString,
			Description: "Identifier of the job the user asks about, exactly as written.",
			Nullable:    genai.Ptr(true),
		},
		"job_name": {
			Type:        genai.TypeString,
			Description: "Name of the job the user asks about.",
			Nullable:    genai.Ptr(true),
		},
	},
	PropertyOrdering: []string{"job_id", "job_name"},
}

var filterSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"matches": {
			Type:        genai.TypeArray,
			Description: "Row numbers for which the claim is true.",
			Items:       &genai.Schema{Type: genai.TypeInteger},
		},
	},
	Required: []string{"matches"},
}

var aggregateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"answers": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"answers"},
}
