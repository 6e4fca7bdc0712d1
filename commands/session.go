package commands

import (
	"livebridge/live"
	"livebridge/router"
)

func registerSession(reg registerFunc, song *live.Song) {
	reg("health_check", func(p router.Params) (any, error) {
		return map[string]any{
			"status":      "ok",
			"tempo":       song.Tempo(),
			"is_playing":  song.IsPlaying(),
			"track_count": song.TrackCount(),
		}, nil
	})

	reg("get_session_info", func(p router.Params) (any, error) {
		num, den := song.TimeSignature()
		master := song.Master()
		return map[string]any{
			"tempo":                 song.Tempo(),
			"signature_numerator":   num,
			"signature_denominator": den,
			"track_count":           song.TrackCount(),
			"return_track_count":    song.ReturnTrackCount(),
			"master_track": map[string]any{
				"name":    "Master",
				"volume":  master.Volume,
				"panning": master.Panning,
			},
		}, nil
	})

	reg("get_playback_position", func(p router.Params) (any, error) {
		num, den := song.TimeSignature()
		return map[string]any{
			"current_song_time":     song.CurrentSongTime(),
			"is_playing":            song.IsPlaying(),
			"tempo":                 song.Tempo(),
			"signature_numerator":   num,
			"signature_denominator": den,
		}, nil
	})

	reg("get_master_info", func(p router.Params) (any, error) {
		master := song.Master()
		return map[string]any{
			"name":    "Master",
			"volume":  master.Volume,
			"panning": master.Panning,
		}, nil
	})

	reg("get_metronome_state", func(p router.Params) (any, error) {
		return map[string]any{"enabled": song.MetronomeEnabled()}, nil
	})

	reg("get_selected_track", func(p router.Params) (any, error) {
		return map[string]any{"track_index": song.SelectedTrack()}, nil
	})

	reg("get_selected_scene", func(p router.Params) (any, error) {
		return map[string]any{"scene_index": song.SelectedScene()}, nil
	})

	reg("get_current_song_time", func(p router.Params) (any, error) {
		return map[string]any{"current_song_time": song.CurrentSongTime()}, nil
	})

	reg("get_song_length", func(p router.Params) (any, error) {
		return map[string]any{"song_length": song.SongLength()}, nil
	})
}
