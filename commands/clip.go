package commands

import (
	"livebridge/live"
	"livebridge/router"
)

func registerClip(reg registerFunc, song *live.Song) {
	reg("get_clip_info", func(p router.Params) (any, error) {
		trackIndex, clipIndex, err := clipIndices(p)
		if err != nil {
			return nil, err
		}
		slot, err := song.Clip(trackIndex, clipIndex)
		if err != nil {
			return nil, err
		}
		track, err := song.Track(trackIndex)
		if err != nil {
			return nil, err
		}
		info := map[string]any{
			"track_index": trackIndex,
			"clip_index":  clipIndex,
			"has_clip":    slot.HasClip,
		}
		if slot.HasClip {
			info["name"] = slot.Clip.Name
			info["length"] = slot.Clip.Length
			// Clip type follows the track that holds it.
			info["is_midi_clip"] = track.IsMIDITrack
			info["is_audio_clip"] = track.IsAudioTrack
			info["is_playing"] = slot.Clip.IsPlaying
			info["is_recording"] = slot.Clip.IsRecording
			info["is_triggered"] = slot.Clip.IsTriggered
			info["looping"] = slot.Clip.Looping
			info["loop_start"] = slot.Clip.LoopStart
			info["loop_end"] = slot.Clip.LoopEnd
			info["color_index"] = slot.Clip.Color
		}
		return info, nil
	})

	reg("create_clip", func(p router.Params) (any, error) {
		trackIndex, clipIndex, err := clipIndices(p)
		if err != nil {
			return nil, err
		}
		length, err := p.Float("length", 4.0)
		if err != nil {
			return nil, err
		}
		if err := song.CreateClip(trackIndex, clipIndex, length); err != nil {
			return nil, err
		}
		return map[string]any{
			"track_index": trackIndex,
			"clip_index":  clipIndex,
			"length":      length,
		}, nil
	})

	reg("delete_clip", func(p router.Params) (any, error) {
		trackIndex, clipIndex, err := clipIndices(p)
		if err != nil {
			return nil, err
		}
		name, err := song.DeleteClip(trackIndex, clipIndex)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"deleted":     true,
			"track_index": trackIndex,
			"clip_index":  clipIndex,
			"clip_name":   name,
		}, nil
	})

	reg("set_clip_name", func(p router.Params) (any, error) {
		trackIndex, clipIndex, err := clipIndices(p)
		if err != nil {
			return nil, err
		}
		name, err := p.String("name", "")
		if err != nil {
			return nil, err
		}
		if err := song.SetClipName(trackIndex, clipIndex, name); err != nil {
			return nil, err
		}
		return map[string]any{
			"track_index": trackIndex,
			"clip_index":  clipIndex,
			"name":        name,
		}, nil
	})

	reg("fire_clip", func(p router.Params) (any, error) {
		trackIndex, clipIndex, err := clipIndices(p)
		if err != nil {
			return nil, err
		}
		if err := song.FireClip(trackIndex, clipIndex); err != nil {
			return nil, err
		}
		return map[string]any{
			"fired":       true,
			"track_index": trackIndex,
			"clip_index":  clipIndex,
		}, nil
	})

	reg("stop_clip", func(p router.Params) (any, error) {
		trackIndex, clipIndex, err := clipIndices(p)
		if err != nil {
			return nil, err
		}
		if err := song.StopClip(trackIndex, clipIndex); err != nil {
			return nil, err
		}
		return map[string]any{
			"stopped":     true,
			"track_index": trackIndex,
			"clip_index":  clipIndex,
		}, nil
	})
}

func clipIndices(p router.Params) (trackIndex, clipIndex int, err error) {
	trackIndex, err = p.Int("track_index", 0)
	if err != nil {
		return 0, 0, err
	}
	clipIndex, err = p.Int("clip_index", 0)
	if err != nil {
		return 0, 0, err
	}
	return trackIndex, clipIndex, nil
}
