// package session owns the client-side session state: resolving the
// session context from a pasted link or code, the admin privilege flag,
// and the persisted participant identity.
//
// A [Context], once established, is immutable; switching between a
// session and the global queue requires a fresh process. Nothing in the
// client flips modes mid-run.
package session
