// Package signals implements host-style signal sources and the connection
// registry that owns every subscription attentiond makes.
//
// The registry can take over a host default handler: the handler is stored
// as data in a Slot, disconnected while attentiond is enabled and reconnected
// to the same source and event on teardown.
package signals
