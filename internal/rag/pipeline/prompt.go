package pipeline

import (
	"fmt"

	"aiact-tutor/internal/rag/schema"
)

// systemInstruction is the fixed behavioural contract for the model. It is
// a constant: user data never reaches the system role, which closes the
// door on prompt injection through the instruction slot. Context and
// question only ever appear in the user turn.
const systemInstruction = `You are an assistant that helps users understand the EU AI Act.
Use the provided context to answer questions accurately and comprehensively.
If the information is not available in the provided context, say you don't know rather than making up information.
Always cite the specific article, section, or document when providing information.
Format citations as "According to [Article/Section X]" or "As stated in [Document Y]".
Be concise but thorough in your explanations.`

// emptyContext is what the model sees when retrieval found nothing, so it
// can state that it has no grounding instead of inventing an answer.
const emptyContext = "No relevant context was found in the document store."

// userPromptFormat carries the formatted context and the question.
const userPromptFormat = `Context information:
%s

Question: %s

Please provide a comprehensive answer based on the context above.`

// BuildPrompt combines the fixed system instruction, the formatted context
// and the user's question into a two-role structured prompt.
func BuildPrompt(contextText, question string) schema.Prompt {
	if contextText == "" {
		contextText = emptyContext
	}

	return schema.Prompt{
		System: systemInstruction,
		User:   fmt.Sprintf(userPromptFormat, contextText, question),
	}
}
