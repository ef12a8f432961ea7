// Package gemini provides a client for the Gemini generateContent API.
//
// The client speaks the REST endpoint directly over net/http, declaring
// tools as function declarations and pinning generation parameters per
// request. Responses are classified into a closed Reply variant (text,
// function call, empty, malformed) immediately after decoding, so the
// rest of the application never probes optional response fields.
//
// Conversation state is expressed as []Content; the same Content type is
// used both for outgoing context and for turns appended to history.
//
// Example usage:
//
//	client := gemini.NewClient(apiKey, "gemini-1.5-pro-latest")
//	resp, err := client.GenerateContent(ctx, gemini.GenerateRequest{
//	    Contents:         history,
//	    Tools:            declarations,
//	    GenerationConfig: &gemini.GenerationConfig{Temperature: gemini.Temperature(0)},
//	})
//	if err != nil {
//	    // transport/auth failure
//	}
//	switch reply := gemini.Classify(resp); reply.Kind {
//	case gemini.ReplyCall:
//	    // invoke reply.Call.Name with reply.Call.Args
//	case gemini.ReplyText:
//	    // use reply.Text
//	}
package gemini
