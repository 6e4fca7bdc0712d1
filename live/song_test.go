package live

import (
	"strings"
	"testing"
)

func TestCreateTrackAppendsAndInserts(t *testing.T) {
	s := NewSong()

	idx, name, err := s.CreateMIDITrack(-1)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Errorf("append index: got %d, want 0", idx)
	}
	if name == "" {
		t.Error("new track has no name")
	}

	if _, _, err := s.CreateAudioTrack(-1); err != nil {
		t.Fatal(err)
	}

	// Insert at the front pushes the others down.
	idx, _, err = s.CreateMIDITrack(0)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Errorf("insert index: got %d, want 0", idx)
	}
	if s.TrackCount() != 3 {
		t.Errorf("track count: got %d, want 3", s.TrackCount())
	}
}

func TestTrackIndexOutOfRange(t *testing.T) {
	s := NewSong()
	_, err := s.Track(5)
	if err == nil {
		t.Fatal("expected error for out-of-range index")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("error should name the range problem: %v", err)
	}
}

func TestVolumeAndPanClamp(t *testing.T) {
	s := NewSong()
	s.CreateMIDITrack(-1)

	v, err := s.SetTrackVolume(0, 1.7)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1.0 {
		t.Errorf("volume clamp: got %v, want 1.0", v)
	}

	p, err := s.SetTrackPan(0, -2.5)
	if err != nil {
		t.Fatal(err)
	}
	if p != -1.0 {
		t.Errorf("pan clamp: got %v, want -1.0", p)
	}
}

func TestClipLifecycle(t *testing.T) {
	s := NewSong()
	s.CreateMIDITrack(-1)

	if err := s.CreateClip(0, 0, 4.0); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateClip(0, 0, 4.0); err == nil {
		t.Error("creating over an occupied slot must fail")
	}
	if err := s.SetClipName(0, 0, "Verse"); err != nil {
		t.Fatal(err)
	}

	if err := s.FireClip(0, 0); err != nil {
		t.Fatal(err)
	}
	slot, err := s.Clip(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Clip.IsPlaying {
		t.Error("fired clip is not playing")
	}
	if !s.IsPlaying() {
		t.Error("firing a clip must start the transport")
	}

	name, err := s.DeleteClip(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Verse" {
		t.Errorf("deleted clip name: got %q, want %q", name, "Verse")
	}
	if _, err := s.Clip(0, 0); err != nil {
		t.Fatal(err)
	}
	if slot, _ := s.Clip(0, 0); slot.HasClip {
		t.Error("slot still has a clip after delete")
	}
}

func TestFireSceneLaunchesRow(t *testing.T) {
	s := NewSong()
	s.CreateMIDITrack(-1)
	s.CreateMIDITrack(-1)
	s.CreateClip(0, 1, 4.0)
	s.CreateClip(1, 1, 8.0)

	if err := s.FireScene(1); err != nil {
		t.Fatal(err)
	}
	for ti := 0; ti < 2; ti++ {
		slot, _ := s.Clip(ti, 1)
		if !slot.Clip.IsPlaying {
			t.Errorf("track %d clip in fired scene is not playing", ti)
		}
	}

	if err := s.StopScene(1); err != nil {
		t.Fatal(err)
	}
	slot, _ := s.Clip(0, 1)
	if slot.Clip.IsPlaying {
		t.Error("clip still playing after StopScene")
	}
}

func TestSceneInsertKeepsSlotAlignment(t *testing.T) {
	s := NewSong()
	s.CreateMIDITrack(-1)
	base := s.SceneCount()

	idx, err := s.CreateScene(0)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Errorf("insert index: got %d, want 0", idx)
	}
	track, _ := s.Track(0)
	if len(track.ClipSlots) != base+1 {
		t.Errorf("clip slots not extended with scene: got %d, want %d", len(track.ClipSlots), base+1)
	}

	if err := s.DeleteScene(0); err != nil {
		t.Fatal(err)
	}
	track, _ = s.Track(0)
	if len(track.ClipSlots) != base {
		t.Errorf("clip slots not shrunk with scene: got %d, want %d", len(track.ClipSlots), base)
	}
}

func TestUndoRedo(t *testing.T) {
	s := NewSong()

	if s.Undo() {
		t.Error("Undo on empty history must report false")
	}

	s.SetTempo(140)
	if s.Tempo() != 140 {
		t.Fatalf("tempo: got %v", s.Tempo())
	}

	if !s.Undo() {
		t.Fatal("Undo reported no history")
	}
	if s.Tempo() != 120 {
		t.Errorf("tempo after undo: got %v, want 120", s.Tempo())
	}

	if !s.Redo() {
		t.Fatal("Redo reported no history")
	}
	if s.Tempo() != 140 {
		t.Errorf("tempo after redo: got %v, want 140", s.Tempo())
	}
}

func TestTempoClamp(t *testing.T) {
	s := NewSong()
	applied, _ := s.SetTempo(5)
	if applied != 20 {
		t.Errorf("tempo floor: got %v, want 20", applied)
	}
	applied, _ = s.SetTempo(2000)
	if applied != 999 {
		t.Errorf("tempo ceiling: got %v, want 999", applied)
	}
}

func TestSendLevels(t *testing.T) {
	s := NewSong()
	s.CreateAudioTrack(-1)

	lvl, err := s.SetSendLevel(0, 1, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if lvl != 0.6 {
		t.Errorf("send level: got %v", lvl)
	}

	got, err := s.SendLevel(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.6 {
		t.Errorf("read back send level: got %v", got)
	}

	if _, err := s.SetSendLevel(0, 9, 0.5); err == nil {
		t.Error("expected error for send index past return track count")
	}
}
