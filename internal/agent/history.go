package agent

import "github.com/teemow/gmailfilter/internal/gemini"

// categorizePromptPrefix frames the raw email body as an instruction.
const categorizePromptPrefix = "Categorize the following email: "

// Synthetic model notes recorded in history when no real model reply
// exists, so a caller can always continue the conversation.
const (
	noteSessionError = "Error in MCP session."
	noteBackendError = "Error calling Gemini."
)

// userTurn wraps an email body in the categorization instruction.
func userTurn(body string) gemini.Content {
	return gemini.Content{
		Role:  gemini.RoleUser,
		Parts: []gemini.Part{{Text: categorizePromptPrefix + body}},
	}
}

// modelTurn wraps parts returned by the model. The raw part is preserved
// verbatim so function calls stay auditable in history.
func modelTurn(parts ...gemini.Part) gemini.Content {
	return gemini.Content{
		Role:  gemini.RoleModel,
		Parts: parts,
	}
}

// modelNote builds a synthetic model turn holding an error note.
func modelNote(text string) gemini.Content {
	return modelTurn(gemini.Part{Text: text})
}

// appendTurns returns a new history with turns appended. The result
// always has a fresh backing array, so previous history slices held by
// callers are never mutated and can be branched safely.
func appendTurns(history []gemini.Content, turns ...gemini.Content) []gemini.Content {
	updated := make([]gemini.Content, 0, len(history)+len(turns))
	updated = append(updated, history...)
	updated = append(updated, turns...)
	return updated
}
