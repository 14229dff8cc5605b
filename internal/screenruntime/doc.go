// Package screenruntime coordinates data refreshes for the active screen.
//
// A Runtime runs at most one refresh at a time. Requests that arrive while a
// refresh is in flight collapse into a single queued follow-up. Every refresh
// snapshots the mount token when it starts; if the token changed by the time
// it completes, the result is discarded and counted instead of applied.
//
// Phases:
//
//	idle --RunRefresh--> refreshing --RunRefresh--> refreshing+queued
//	refreshing --complete--> idle
//	refreshing+queued --complete--> refreshing (fresh token snapshot)
//
// All transitions happen under one mutex. The refresh function and the apply
// callback always run without the mutex held.
package screenruntime
