package badger

import "fmt"

// Key prefixes for different data types
const (
	sessionRecordPrefix = "sesrec"
)

// makeSessionKey generates a key for a session's message log.
func makeSessionKey(sessionID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", sessionRecordPrefix, sessionID))
}
