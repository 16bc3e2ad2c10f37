// Package attention decides what happens when a window asks for attention.
//
// Windows that were just mapped are focused once. Any other demand raises a
// persistent notification and marks the owning application's dock icon as
// urgent; both are withdrawn together once the window stops demanding
// attention. Highlights are deduplicated per application.
package attention
