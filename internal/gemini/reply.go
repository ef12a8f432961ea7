package gemini

// ReplyKind enumerates the closed set of shapes a model reply can take.
// Downstream code pattern-matches this instead of probing the raw
// response for optional fields.
type ReplyKind int

const (
	// ReplyMalformed means the response carried no candidates or no
	// content parts at all.
	ReplyMalformed ReplyKind = iota

	// ReplyText means the first part carries direct text.
	ReplyText

	// ReplyCall means the first part carries a function-call request.
	ReplyCall

	// ReplyEmpty means a part exists but holds neither text nor a call.
	ReplyEmpty
)

// Reply is the classified form of a model response. Part holds the raw
// first part so callers can append it to history verbatim.
type Reply struct {
	Kind ReplyKind
	Text string
	Call *FunctionCall
	Part Part
}

// Classify inspects the first content part of the first candidate and
// returns its tagged form. Additional candidates and parts are ignored:
// the categorization loop is single-shot, not a multi-step tool chain.
func Classify(resp *GenerateResponse) Reply {
	if resp == nil || len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Reply{Kind: ReplyMalformed}
	}

	part := resp.Candidates[0].Content.Parts[0]
	switch {
	case part.FunctionCall != nil:
		return Reply{Kind: ReplyCall, Call: part.FunctionCall, Part: part}
	case part.Text != "":
		return Reply{Kind: ReplyText, Text: part.Text, Part: part}
	default:
		return Reply{Kind: ReplyEmpty, Part: part}
	}
}
