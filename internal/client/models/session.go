package models

// Session is the durable client state. An empty Token means no token.
type Session struct {
	Token            string
	HasAcceptedTerms bool
	WasLoggedOut     bool
	IsOffline        bool
}
