// package repositories provides the persistence layer for client-held
// state, currently the participant identity store.
//
// The store keeps one identity per session, reused silently on rejoin
// and updated only by an explicit rename.
package repositories
