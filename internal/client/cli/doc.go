// Package cli implements snipctl, the command-line client for SnipKeeper.
//
// Each invocation is a single cobra command. The login is kept in a session
// file between invocations; commands that need it load the token from there
// and ask the user to log in again once the server rejects it.
package cli
