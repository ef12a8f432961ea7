package gemini

import "fmt"

// Conversation roles used by the Gemini API.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Content is one turn in a conversation: a role plus ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a single piece of turn content: either plain text or a
// function-call request from the model. Parts returned by the model are
// appended to history verbatim so failed tool calls stay auditable.
type Part struct {
	Text         string        `json:"text,omitempty"`
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
}

// FunctionCall is the model's request to invoke a declared tool.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// Tool declares callable functions to the model.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations,omitempty"`
}

// FunctionDeclaration describes one callable function. Parameters is a
// JSON schema object.
type FunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// GenerationConfig controls sampling. Temperature is a pointer so that an
// explicit zero (deterministic output) still serializes.
type GenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

// Temperature returns a pointer for use in GenerationConfig.
func Temperature(v float64) *float64 {
	return &v
}

// GenerateRequest is the payload for a generateContent call.
type GenerateRequest struct {
	Contents         []Content         `json:"contents"`
	Tools            []Tool            `json:"tools,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse is the decoded generateContent reply.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated answer. Only the first candidate is ever
// inspected by this application.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Text returns the concatenated text parts of the first candidate, or the
// empty string when the model produced no direct text.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var text string
	for _, part := range r.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text
}

// BackendError represents a failure talking to the Gemini API.
type BackendError struct {
	// Op is the operation that failed (e.g., "generateContent")
	Op string

	// StatusCode is the HTTP status code, if a response was received
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gemini %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *BackendError) Unwrap() error {
	return e.Err
}
