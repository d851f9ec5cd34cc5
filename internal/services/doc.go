// package services implements the HTTP client for the jukebox server.
//
// [Service] is the full API surface consumed by the rest of the client;
// [JukeboxClient] is the concrete implementation. A client is either
// global (default queue) or session-scoped: [JukeboxClient.WithSession]
// derives a scoped client whose requests hit /session/{id}/... paths and
// carry the session's bearer token. The scope of a client never changes
// after construction.
//
// Business rejections ("cooldown", "error") arrive inside 2xx bodies as a
// [StatusResult]; transport failures, non-2xx statuses and undecodable
// bodies are returned as wrapped errors.
package services
