// Package commands registers the command catalog against a live.Song.
//
// Classification is driven by MutatingCommands, the single allow-list
// shared by the server (to route through the bridge) and the client (to
// apply the settle delays around mutations). A name in the list is never
// executed directly on a worker goroutine, however cheap it looks.
package commands

import (
	"livebridge/live"
	"livebridge/router"
)

// MutatingCommands enumerates every operation that touches host state and
// must run on the scheduler thread.
var MutatingCommands = map[string]bool{
	"create_midi_track":  true,
	"create_audio_track": true,
	"delete_track":       true,
	"duplicate_track":    true,
	"set_track_name":     true,
	"set_track_mute":     true,
	"set_track_solo":     true,
	"set_track_arm":      true,
	"set_track_volume":   true,
	"set_track_pan":      true,
	"set_track_color":    true,
	"set_send_level":     true,
	"select_track":       true,

	"create_clip":   true,
	"delete_clip":   true,
	"set_clip_name": true,
	"fire_clip":     true,
	"stop_clip":     true,

	"create_scene":    true,
	"delete_scene":    true,
	"fire_scene":      true,
	"stop_scene":      true,
	"set_scene_name":  true,
	"set_scene_color": true,
	"select_scene":    true,

	"set_tempo":        true,
	"start_playback":   true,
	"stop_playback":    true,
	"continue_playing": true,
	"set_metronome":    true,
	"undo":             true,
	"redo":             true,
}

// IsMutating reports whether name is on the mutating allow-list.
func IsMutating(name string) bool {
	return MutatingCommands[name]
}

// registerFunc places one handler into the right class of the table.
type registerFunc func(name string, h router.HandlerFunc)

// Register populates the table with the full catalog for the given song.
func Register(t *router.Table, song *live.Song) {
	reg := func(name string, h router.HandlerFunc) {
		if MutatingCommands[name] {
			t.Deferred(name, h)
		} else {
			t.Immediate(name, h)
		}
	}
	registerSession(reg, song)
	registerTrack(reg, song)
	registerClip(reg, song)
	registerScene(reg, song)
	registerTransport(reg, song)
}
