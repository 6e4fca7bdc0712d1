package commands

import (
	"livebridge/live"
	"livebridge/router"
)

func registerTransport(reg registerFunc, song *live.Song) {
	reg("set_tempo", func(p router.Params) (any, error) {
		tempo, err := p.Float("tempo", 120.0)
		if err != nil {
			return nil, err
		}
		applied, err := song.SetTempo(tempo)
		if err != nil {
			return nil, err
		}
		return map[string]any{"tempo": applied}, nil
	})

	reg("start_playback", func(p router.Params) (any, error) {
		song.StartPlayback()
		return map[string]any{"playing": true}, nil
	})

	reg("stop_playback", func(p router.Params) (any, error) {
		song.StopPlayback()
		return map[string]any{"playing": false}, nil
	})

	reg("continue_playing", func(p router.Params) (any, error) {
		song.ContinuePlayback()
		return map[string]any{"playing": true, "current_song_time": song.CurrentSongTime()}, nil
	})

	reg("set_metronome", func(p router.Params) (any, error) {
		enabled, err := p.Bool("enabled", true)
		if err != nil {
			return nil, err
		}
		song.SetMetronome(enabled)
		return map[string]any{"enabled": enabled}, nil
	})

	reg("undo", func(p router.Params) (any, error) {
		return map[string]any{"undone": song.Undo()}, nil
	})

	reg("redo", func(p router.Params) (any, error) {
		return map[string]any{"redone": song.Redo()}, nil
	})
}
