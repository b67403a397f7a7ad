// Package chat implements the conversation engine of the assistant.
//
// The Engine runs one turn at a time per session: it retrieves manual
// context for the question, builds the prompt from the session's history,
// asks the generator for an answer and only then commits the user question
// and the answer to the session log. A failed generation leaves the session
// exactly as it was.
package chat
