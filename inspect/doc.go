// Package inspect publishes live frame snapshots over WebSocket for
// debugging tooling.
//
// The engine itself is single-threaded; the inspector sits at its edge.
// After each frame the host hands the rendered frame and store to
// Publish, which projects them to JSON once and fans the bytes out to
// every connected subscriber. Subscriber connections come and go on
// HTTP goroutines, so the subscriber set is the one place here that
// takes a lock. A client connecting between frames immediately receives
// the last published snapshot.
package inspect
