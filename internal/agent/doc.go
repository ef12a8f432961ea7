// Package agent implements the conversational email-categorization
// loops. One Agent couples a model backend with MCP tool sessions: the
// categorization loop presents the discovered tool catalog to the model
// and executes the function call it requests, and the fetch loop pulls
// email records through a fixed tool invocation.
//
// Neither loop returns errors. Faults are classified into a closed set
// of sentinel strings (categorization) or error-marker records (fetch),
// and conversation history grows append-only by exactly two turns per
// categorization call regardless of outcome.
package agent
