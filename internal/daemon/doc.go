// Package daemon provides the main orchestration for attentiond.
// It supplies the single dispatch loop every host signal runs on, the
// notification surface the attention handler drives, and the host's default
// attention handler that is taken over while attentiond is enabled.
package daemon
