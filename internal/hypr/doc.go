// Package hypr binds attentiond to the Hyprland compositor.
//
// Hyprland reports window lifecycle, focus and urgency on its event socket
// (.socket2.sock) and accepts hyprctl-style requests on its command socket
// (.socket.sock). Display replays those events as the window-manager signals
// the attention handler consumes.
package hypr
