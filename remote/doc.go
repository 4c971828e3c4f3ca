// Package remote feeds input from a socket.io host into the frame loop.
//
// The original input source for this engine is in-process polling, but
// a menu can also be driven by a companion app or a test rig over the
// network. The bridge connects to a socket.io server, listens for
// "menu:event" and "menu:move" messages, decodes them into the engine's
// event and direction types, and buffers them on channels the frame
// loop drains once per frame. The engine stays single-threaded: socket
// callbacks only ever touch the channels, never the store or frames,
// and when a buffer is full the input is dropped with a warning rather
// than blocking the socket.
package remote
