package commands

import (
	"livebridge/live"
	"livebridge/router"
)

func registerTrack(reg registerFunc, song *live.Song) {
	reg("get_track_info", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		track, err := song.Track(index)
		if err != nil {
			return nil, err
		}
		return trackInfo(track), nil
	})

	reg("get_track_color", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		track, err := song.Track(index)
		if err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "color": track.Color}, nil
	})

	reg("get_return_tracks", func(p router.Params) (any, error) {
		returns := song.ReturnTracks()
		out := make([]map[string]any, len(returns))
		for i, r := range returns {
			out[i] = map[string]any{
				"index":   r.Index,
				"name":    r.Name,
				"volume":  r.Volume,
				"panning": r.Panning,
			}
		}
		return map[string]any{"return_tracks": out}, nil
	})

	reg("get_send_level", func(p router.Params) (any, error) {
		trackIndex, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		sendIndex, err := p.Int("send_index", 0)
		if err != nil {
			return nil, err
		}
		level, err := song.SendLevel(trackIndex, sendIndex)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"track_index": trackIndex,
			"send_index":  sendIndex,
			"level":       level,
		}, nil
	})

	reg("create_midi_track", func(p router.Params) (any, error) {
		index, err := p.Int("index", -1)
		if err != nil {
			return nil, err
		}
		newIndex, name, err := song.CreateMIDITrack(index)
		if err != nil {
			return nil, err
		}
		return map[string]any{"index": newIndex, "name": name}, nil
	})

	reg("create_audio_track", func(p router.Params) (any, error) {
		index, err := p.Int("index", -1)
		if err != nil {
			return nil, err
		}
		newIndex, name, err := song.CreateAudioTrack(index)
		if err != nil {
			return nil, err
		}
		return map[string]any{"index": newIndex, "name": name}, nil
	})

	reg("delete_track", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		if err := song.DeleteTrack(index); err != nil {
			return nil, err
		}
		return map[string]any{"deleted": true, "track_index": index}, nil
	})

	reg("duplicate_track", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		newIndex, err := song.DuplicateTrack(index)
		if err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "new_track_index": newIndex}, nil
	})

	reg("set_track_name", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		name, err := p.String("name", "")
		if err != nil {
			return nil, err
		}
		applied, err := song.SetTrackName(index, name)
		if err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "name": applied}, nil
	})

	reg("set_track_mute", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		mute, err := p.Bool("mute", false)
		if err != nil {
			return nil, err
		}
		if err := song.SetTrackMute(index, mute); err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "mute": mute}, nil
	})

	reg("set_track_solo", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		solo, err := p.Bool("solo", false)
		if err != nil {
			return nil, err
		}
		if err := song.SetTrackSolo(index, solo); err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "solo": solo}, nil
	})

	reg("set_track_arm", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		arm, err := p.Bool("arm", false)
		if err != nil {
			return nil, err
		}
		if err := song.SetTrackArm(index, arm); err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "arm": arm}, nil
	})

	reg("set_track_volume", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		volume, err := p.Float("volume", 0.85)
		if err != nil {
			return nil, err
		}
		applied, err := song.SetTrackVolume(index, volume)
		if err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "volume": applied}, nil
	})

	reg("set_track_pan", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		pan, err := p.Float("pan", 0.0)
		if err != nil {
			return nil, err
		}
		applied, err := song.SetTrackPan(index, pan)
		if err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "panning": applied}, nil
	})

	reg("set_track_color", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		color, err := p.Int("color", 0)
		if err != nil {
			return nil, err
		}
		if err := song.SetTrackColor(index, color); err != nil {
			return nil, err
		}
		return map[string]any{"track_index": index, "color": color}, nil
	})

	reg("set_send_level", func(p router.Params) (any, error) {
		trackIndex, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		sendIndex, err := p.Int("send_index", 0)
		if err != nil {
			return nil, err
		}
		level, err := p.Float("level", 0.0)
		if err != nil {
			return nil, err
		}
		applied, err := song.SetSendLevel(trackIndex, sendIndex, level)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"track_index": trackIndex,
			"send_index":  sendIndex,
			"level":       applied,
		}, nil
	})

	reg("select_track", func(p router.Params) (any, error) {
		index, err := p.Int("track_index", 0)
		if err != nil {
			return nil, err
		}
		if err := song.SelectTrack(index); err != nil {
			return nil, err
		}
		return map[string]any{"selected": true, "track_index": index}, nil
	})
}

// trackInfo flattens a track snapshot into the wire shape clients expect.
func trackInfo(t live.TrackSnapshot) map[string]any {
	slots := make([]map[string]any, len(t.ClipSlots))
	for i, slot := range t.ClipSlots {
		entry := map[string]any{
			"index":    slot.Index,
			"has_clip": slot.HasClip,
			"clip":     nil,
		}
		if slot.HasClip {
			entry["clip"] = map[string]any{
				"name":         slot.Clip.Name,
				"length":       slot.Clip.Length,
				"is_playing":   slot.Clip.IsPlaying,
				"is_recording": slot.Clip.IsRecording,
			}
		}
		slots[i] = entry
	}
	devices := make([]map[string]any, len(t.Devices))
	for i, d := range t.Devices {
		devices[i] = map[string]any{
			"index":      d.Index,
			"name":       d.Name,
			"class_name": d.ClassName,
			"active":     d.Active,
		}
	}
	return map[string]any{
		"index":          t.Index,
		"name":           t.Name,
		"is_audio_track": t.IsAudioTrack,
		"is_midi_track":  t.IsMIDITrack,
		"mute":           t.Mute,
		"solo":           t.Solo,
		"arm":            t.Arm,
		"volume":         t.Volume,
		"panning":        t.Panning,
		"clip_slots":     slots,
		"devices":        devices,
	}
}
