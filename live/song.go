package live

import (
	"fmt"
	"sync"
)

// Song is the live object model: tracks, clips, scenes, return tracks and
// transport state. Read accessors take a read lock and return value
// snapshots, so they are safe from any goroutine. Mutators are documented
// scheduler-thread-only — the bridge routes every mutating command there,
// and nothing else in the process calls them.
type Song struct {
	mu sync.RWMutex

	tempo     float64
	sigNum    int
	sigDen    int
	playing   bool
	songTime  float64
	metronome bool

	tracks  []*track
	returns []*returnTrack
	scenes  []*scene

	masterVolume float64
	masterPan    float64

	selTrack int
	selScene int

	undoStack []*songState
	redoStack []*songState
}

const (
	defaultTempo  = 120.0
	defaultVolume = 0.85
	maxUndoDepth  = 100
)

type track struct {
	name        string
	isMIDI      bool
	mute        bool
	solo        bool
	arm         bool
	volume      float64
	pan         float64
	color       int
	playingSlot int
	sends       []float64
	slots       []*clip
	devices     []device
}

type clip struct {
	name      string
	length    float64
	looping   bool
	loopStart float64
	loopEnd   float64
	playing   bool
	recording bool
	triggered bool
	color     int
}

type device struct {
	name      string
	className string
	active    bool
}

type scene struct {
	name      string
	color     int
	triggered bool
}

type returnTrack struct {
	name   string
	volume float64
	pan    float64
}

// NewSong builds an empty session: no tracks, eight scenes, two return
// tracks, tempo 120 in 4/4 — the shape of a fresh host project.
func NewSong() *Song {
	s := &Song{
		tempo:        defaultTempo,
		sigNum:       4,
		sigDen:       4,
		masterVolume: defaultVolume,
		masterPan:    0,
		returns: []*returnTrack{
			{name: "A-Return", volume: defaultVolume},
			{name: "B-Return", volume: defaultVolume},
		},
	}
	for i := 0; i < 8; i++ {
		s.scenes = append(s.scenes, &scene{name: ""})
	}
	return s
}

// Snapshot types returned by read accessors. All fields are copies.

type ClipSnapshot struct {
	Name        string
	Length      float64
	Looping     bool
	LoopStart   float64
	LoopEnd     float64
	IsPlaying   bool
	IsRecording bool
	IsTriggered bool
	Color       int
}

type ClipSlotSnapshot struct {
	Index   int
	HasClip bool
	Clip    *ClipSnapshot
}

type DeviceSnapshot struct {
	Index     int
	Name      string
	ClassName string
	Active    bool
}

type TrackSnapshot struct {
	Index        int
	Name         string
	IsMIDITrack  bool
	IsAudioTrack bool
	Mute         bool
	Solo         bool
	Arm          bool
	Volume       float64
	Panning      float64
	Color        int
	PlayingSlot  int
	Sends        []float64
	ClipSlots    []ClipSlotSnapshot
	Devices      []DeviceSnapshot
}

type SceneSnapshot struct {
	Index       int
	Name        string
	Color       int
	IsTriggered bool
}

type ReturnTrackSnapshot struct {
	Index   int
	Name    string
	Volume  float64
	Panning float64
}

type MasterSnapshot struct {
	Volume  float64
	Panning float64
}

// --- read accessors (any goroutine) ---

func (s *Song) Tempo() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tempo
}

func (s *Song) TimeSignature() (numerator, denominator int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sigNum, s.sigDen
}

func (s *Song) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

func (s *Song) CurrentSongTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.songTime
}

// SongLength reports the end of the last clip across all tracks, in beats.
func (s *Song) SongLength() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var length float64
	for _, t := range s.tracks {
		for _, c := range t.slots {
			if c != nil && c.length > length {
				length = c.length
			}
		}
	}
	return length
}

func (s *Song) MetronomeEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metronome
}

func (s *Song) TrackCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}

func (s *Song) ReturnTrackCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.returns)
}

func (s *Song) SceneCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenes)
}

// Track returns a deep value snapshot of one track.
func (s *Song) Track(index int) (TrackSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.trackAt(index)
	if err != nil {
		return TrackSnapshot{}, err
	}
	return snapshotTrack(index, t), nil
}

func (s *Song) Scene(index int) (SceneSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, err := s.sceneAt(index)
	if err != nil {
		return SceneSnapshot{}, err
	}
	return SceneSnapshot{Index: index, Name: sc.name, Color: sc.color, IsTriggered: sc.triggered}, nil
}

func (s *Song) Scenes() []SceneSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SceneSnapshot, len(s.scenes))
	for i, sc := range s.scenes {
		out[i] = SceneSnapshot{Index: i, Name: sc.name, Color: sc.color, IsTriggered: sc.triggered}
	}
	return out
}

func (s *Song) ReturnTrack(index int) (ReturnTrackSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.returns) {
		return ReturnTrackSnapshot{}, fmt.Errorf("return track index %d out of range (0-%d)", index, len(s.returns)-1)
	}
	r := s.returns[index]
	return ReturnTrackSnapshot{Index: index, Name: r.name, Volume: r.volume, Panning: r.pan}, nil
}

func (s *Song) ReturnTracks() []ReturnTrackSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ReturnTrackSnapshot, len(s.returns))
	for i, r := range s.returns {
		out[i] = ReturnTrackSnapshot{Index: i, Name: r.name, Volume: r.volume, Panning: r.pan}
	}
	return out
}

func (s *Song) Master() MasterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MasterSnapshot{Volume: s.masterVolume, Panning: s.masterPan}
}

func (s *Song) SelectedTrack() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selTrack
}

func (s *Song) SelectedScene() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selScene
}

func (s *Song) SendLevel(trackIndex, sendIndex int) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.trackAt(trackIndex)
	if err != nil {
		return 0, err
	}
	if sendIndex < 0 || sendIndex >= len(t.sends) {
		return 0, fmt.Errorf("send index %d out of range (0-%d)", sendIndex, len(t.sends)-1)
	}
	return t.sends[sendIndex], nil
}

func (s *Song) Clip(trackIndex, clipIndex int) (ClipSlotSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.trackAt(trackIndex)
	if err != nil {
		return ClipSlotSnapshot{}, err
	}
	if clipIndex < 0 || clipIndex >= len(t.slots) {
		return ClipSlotSnapshot{}, fmt.Errorf("clip index %d out of range (0-%d)", clipIndex, len(t.slots)-1)
	}
	return snapshotSlot(clipIndex, t.slots[clipIndex]), nil
}

// --- mutators (scheduler thread only) ---

// CreateMIDITrack inserts a MIDI track at index; -1 appends. Returns the
// index and name of the new track.
func (s *Song) CreateMIDITrack(index int) (int, string, error) {
	return s.createTrack(index, true)
}

func (s *Song) CreateAudioTrack(index int) (int, string, error) {
	return s.createTrack(index, false)
}

func (s *Song) createTrack(index int, midi bool) (int, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < -1 || index > len(s.tracks) {
		return 0, "", fmt.Errorf("track index %d out of range for insert (-1-%d)", index, len(s.tracks))
	}
	s.record()
	t := &track{
		isMIDI:      midi,
		volume:      defaultVolume,
		playingSlot: -1,
		sends:       make([]float64, len(s.returns)),
		slots:       make([]*clip, len(s.scenes)),
	}
	pos := index
	if pos == -1 {
		pos = len(s.tracks)
	}
	s.tracks = append(s.tracks[:pos], append([]*track{t}, s.tracks[pos:]...)...)
	kind := "Audio"
	if midi {
		kind = "MIDI"
	}
	t.name = fmt.Sprintf("%d %s", pos+1, kind)
	return pos, t.name, nil
}

func (s *Song) DeleteTrack(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.trackAt(index); err != nil {
		return err
	}
	s.record()
	s.tracks = append(s.tracks[:index], s.tracks[index+1:]...)
	if s.selTrack >= len(s.tracks) && s.selTrack > 0 {
		s.selTrack = len(s.tracks) - 1
	}
	return nil
}

// DuplicateTrack copies a track (settings and clips) to index+1 and
// returns the new index.
func (s *Song) DuplicateTrack(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.trackAt(index)
	if err != nil {
		return 0, err
	}
	s.record()
	dup := t.clone()
	dup.name = t.name + " Copy"
	pos := index + 1
	s.tracks = append(s.tracks[:pos], append([]*track{dup}, s.tracks[pos:]...)...)
	return pos, nil
}

func (s *Song) SetTrackName(index int, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.trackAt(index)
	if err != nil {
		return "", err
	}
	s.record()
	t.name = name
	return t.name, nil
}

func (s *Song) SetTrackMute(index int, mute bool) error {
	return s.mutateTrack(index, func(t *track) { t.mute = mute })
}

func (s *Song) SetTrackSolo(index int, solo bool) error {
	return s.mutateTrack(index, func(t *track) { t.solo = solo })
}

func (s *Song) SetTrackArm(index int, arm bool) error {
	return s.mutateTrack(index, func(t *track) { t.arm = arm })
}

// SetTrackVolume clamps to [0,1] and returns the applied value.
func (s *Song) SetTrackVolume(index int, volume float64) (float64, error) {
	v := clamp(volume, 0, 1)
	if err := s.mutateTrack(index, func(t *track) { t.volume = v }); err != nil {
		return 0, err
	}
	return v, nil
}

// SetTrackPan clamps to [-1,1] and returns the applied value.
func (s *Song) SetTrackPan(index int, pan float64) (float64, error) {
	p := clamp(pan, -1, 1)
	if err := s.mutateTrack(index, func(t *track) { t.pan = p }); err != nil {
		return 0, err
	}
	return p, nil
}

func (s *Song) SetTrackColor(index, color int) error {
	return s.mutateTrack(index, func(t *track) { t.color = color })
}

// CreateClip creates an empty clip of the given length in a clip slot.
// Fails if the slot already holds a clip.
func (s *Song) CreateClip(trackIndex, clipIndex int, length float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.trackAt(trackIndex)
	if err != nil {
		return err
	}
	if clipIndex < 0 || clipIndex >= len(t.slots) {
		return fmt.Errorf("clip index %d out of range (0-%d)", clipIndex, len(t.slots)-1)
	}
	if t.slots[clipIndex] != nil {
		return fmt.Errorf("clip slot %d on track %d already has a clip", clipIndex, trackIndex)
	}
	if length <= 0 {
		return fmt.Errorf("clip length must be positive, got %v", length)
	}
	s.record()
	t.slots[clipIndex] = &clip{length: length, looping: true, loopEnd: length}
	return nil
}

// DeleteClip removes the clip and returns its name.
func (s *Song) DeleteClip(trackIndex, clipIndex int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, t, err := s.clipAt(trackIndex, clipIndex)
	if err != nil {
		return "", err
	}
	s.record()
	name := c.name
	t.slots[clipIndex] = nil
	return name, nil
}

func (s *Song) SetClipName(trackIndex, clipIndex int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, _, err := s.clipAt(trackIndex, clipIndex)
	if err != nil {
		return err
	}
	s.record()
	c.name = name
	return nil
}

// FireClip launches a clip: it becomes the track's playing slot and the
// transport starts if stopped.
func (s *Song) FireClip(trackIndex, clipIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, t, err := s.clipAt(trackIndex, clipIndex)
	if err != nil {
		return err
	}
	s.record()
	for _, other := range t.slots {
		if other != nil {
			other.playing = false
		}
	}
	c.playing = true
	t.playingSlot = clipIndex
	s.playing = true
	return nil
}

func (s *Song) StopClip(trackIndex, clipIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, t, err := s.clipAt(trackIndex, clipIndex)
	if err != nil {
		return err
	}
	s.record()
	c.playing = false
	if t.playingSlot == clipIndex {
		t.playingSlot = -1
	}
	return nil
}

// SetTempo clamps to the host's 20-999 BPM range and returns the applied
// value.
func (s *Song) SetTempo(tempo float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record()
	s.tempo = clamp(tempo, 20, 999)
	return s.tempo, nil
}

func (s *Song) StartPlayback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
	s.songTime = 0
}

func (s *Song) StopPlayback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	for _, t := range s.tracks {
		for _, c := range t.slots {
			if c != nil {
				c.playing = false
			}
		}
		t.playingSlot = -1
	}
}

// ContinuePlayback resumes from the current song time without rewinding.
func (s *Song) ContinuePlayback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
}

// CreateScene inserts a scene at index (-1 appends) and gives every track
// a matching empty clip slot. Returns the new index.
func (s *Song) CreateScene(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < -1 || index > len(s.scenes) {
		return 0, fmt.Errorf("scene index %d out of range for insert (-1-%d)", index, len(s.scenes))
	}
	s.record()
	pos := index
	if pos == -1 {
		pos = len(s.scenes)
	}
	s.scenes = append(s.scenes[:pos], append([]*scene{{}}, s.scenes[pos:]...)...)
	for _, t := range s.tracks {
		t.slots = append(t.slots[:pos], append([]*clip{nil}, t.slots[pos:]...)...)
		if t.playingSlot >= pos {
			t.playingSlot++
		}
	}
	return pos, nil
}

func (s *Song) DeleteScene(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.sceneAt(index); err != nil {
		return err
	}
	s.record()
	s.scenes = append(s.scenes[:index], s.scenes[index+1:]...)
	for _, t := range s.tracks {
		t.slots = append(t.slots[:index], t.slots[index+1:]...)
		if t.playingSlot == index {
			t.playingSlot = -1
		} else if t.playingSlot > index {
			t.playingSlot--
		}
	}
	if s.selScene >= len(s.scenes) && s.selScene > 0 {
		s.selScene = len(s.scenes) - 1
	}
	return nil
}

// FireScene launches the whole clip row: every slot in the scene that
// holds a clip starts playing.
func (s *Song) FireScene(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, err := s.sceneAt(index)
	if err != nil {
		return err
	}
	s.record()
	sc.triggered = true
	for _, t := range s.tracks {
		if index < len(t.slots) && t.slots[index] != nil {
			for _, other := range t.slots {
				if other != nil {
					other.playing = false
				}
			}
			t.slots[index].playing = true
			t.playingSlot = index
		}
	}
	s.playing = true
	return nil
}

// StopScene stops every playing clip in the scene's row.
func (s *Song) StopScene(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, err := s.sceneAt(index)
	if err != nil {
		return err
	}
	s.record()
	sc.triggered = false
	for _, t := range s.tracks {
		if index < len(t.slots) && t.slots[index] != nil {
			t.slots[index].playing = false
			if t.playingSlot == index {
				t.playingSlot = -1
			}
		}
	}
	return nil
}

func (s *Song) SetSceneName(index int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, err := s.sceneAt(index)
	if err != nil {
		return err
	}
	s.record()
	sc.name = name
	return nil
}

func (s *Song) SetSceneColor(index, color int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, err := s.sceneAt(index)
	if err != nil {
		return err
	}
	s.record()
	sc.color = color
	return nil
}

func (s *Song) SetMetronome(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metronome = enabled
}

// SetSendLevel clamps to [0,1] and returns the applied value.
func (s *Song) SetSendLevel(trackIndex, sendIndex int, level float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.trackAt(trackIndex)
	if err != nil {
		return 0, err
	}
	if sendIndex < 0 || sendIndex >= len(t.sends) {
		return 0, fmt.Errorf("send index %d out of range (0-%d)", sendIndex, len(t.sends)-1)
	}
	s.record()
	t.sends[sendIndex] = clamp(level, 0, 1)
	return t.sends[sendIndex], nil
}

func (s *Song) SelectTrack(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.trackAt(index); err != nil {
		return err
	}
	s.selTrack = index
	return nil
}

func (s *Song) SelectScene(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.sceneAt(index); err != nil {
		return err
	}
	s.selScene = index
	return nil
}

// Undo restores the most recent recorded state. Returns false when the
// history is empty.
func (s *Song) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undoStack) == 0 {
		return false
	}
	s.redoStack = append(s.redoStack, s.capture())
	last := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.restore(last)
	return true
}

// Redo reapplies the most recently undone state.
func (s *Song) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redoStack) == 0 {
		return false
	}
	s.undoStack = append(s.undoStack, s.capture())
	last := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.restore(last)
	return true
}

// --- internals (callers hold s.mu) ---

func (s *Song) trackAt(index int) (*track, error) {
	if index < 0 || index >= len(s.tracks) {
		return nil, fmt.Errorf("track index %d out of range (0-%d)", index, len(s.tracks)-1)
	}
	return s.tracks[index], nil
}

func (s *Song) sceneAt(index int) (*scene, error) {
	if index < 0 || index >= len(s.scenes) {
		return nil, fmt.Errorf("scene index %d out of range (0-%d)", index, len(s.scenes)-1)
	}
	return s.scenes[index], nil
}

func (s *Song) clipAt(trackIndex, clipIndex int) (*clip, *track, error) {
	t, err := s.trackAt(trackIndex)
	if err != nil {
		return nil, nil, err
	}
	if clipIndex < 0 || clipIndex >= len(t.slots) {
		return nil, nil, fmt.Errorf("clip index %d out of range (0-%d)", clipIndex, len(t.slots)-1)
	}
	if t.slots[clipIndex] == nil {
		return nil, nil, fmt.Errorf("no clip in slot %d on track %d", clipIndex, trackIndex)
	}
	return t.slots[clipIndex], t, nil
}

func (s *Song) mutateTrack(index int, mutate func(*track)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.trackAt(index)
	if err != nil {
		return err
	}
	s.record()
	mutate(t)
	return nil
}

// songState is a deep copy of everything undo covers.
type songState struct {
	tempo          float64
	sigNum, sigDen int
	metronome      bool
	tracks         []*track
	returns        []*returnTrack
	scenes         []*scene
	masterVolume   float64
	masterPan      float64
}

func (s *Song) capture() *songState {
	st := &songState{
		tempo:        s.tempo,
		sigNum:       s.sigNum,
		sigDen:       s.sigDen,
		metronome:    s.metronome,
		masterVolume: s.masterVolume,
		masterPan:    s.masterPan,
	}
	for _, t := range s.tracks {
		st.tracks = append(st.tracks, t.clone())
	}
	for _, r := range s.returns {
		cp := *r
		st.returns = append(st.returns, &cp)
	}
	for _, sc := range s.scenes {
		cp := *sc
		st.scenes = append(st.scenes, &cp)
	}
	return st
}

func (s *Song) restore(st *songState) {
	s.tempo = st.tempo
	s.sigNum, s.sigDen = st.sigNum, st.sigDen
	s.metronome = st.metronome
	s.masterVolume, s.masterPan = st.masterVolume, st.masterPan
	s.tracks = st.tracks
	s.returns = st.returns
	s.scenes = st.scenes
}

// record pushes the current state onto the undo stack and clears redo
// history. Called at the top of every undoable mutator.
func (s *Song) record() {
	s.undoStack = append(s.undoStack, s.capture())
	if len(s.undoStack) > maxUndoDepth {
		s.undoStack = s.undoStack[1:]
	}
	s.redoStack = nil
}

func (t *track) clone() *track {
	cp := *t
	cp.sends = append([]float64(nil), t.sends...)
	cp.slots = make([]*clip, len(t.slots))
	for i, c := range t.slots {
		if c != nil {
			cc := *c
			cp.slots[i] = &cc
		}
	}
	cp.devices = append([]device(nil), t.devices...)
	return &cp
}

func snapshotTrack(index int, t *track) TrackSnapshot {
	snap := TrackSnapshot{
		Index:        index,
		Name:         t.name,
		IsMIDITrack:  t.isMIDI,
		IsAudioTrack: !t.isMIDI,
		Mute:         t.mute,
		Solo:         t.solo,
		Arm:          t.arm,
		Volume:       t.volume,
		Panning:      t.pan,
		Color:        t.color,
		PlayingSlot:  t.playingSlot,
		Sends:        append([]float64(nil), t.sends...),
	}
	for i, c := range t.slots {
		snap.ClipSlots = append(snap.ClipSlots, snapshotSlot(i, c))
	}
	for i, d := range t.devices {
		snap.Devices = append(snap.Devices, DeviceSnapshot{Index: i, Name: d.name, ClassName: d.className, Active: d.active})
	}
	return snap
}

func snapshotSlot(index int, c *clip) ClipSlotSnapshot {
	slot := ClipSlotSnapshot{Index: index, HasClip: c != nil}
	if c != nil {
		slot.Clip = &ClipSnapshot{
			Name:        c.name,
			Length:      c.length,
			Looping:     c.looping,
			LoopStart:   c.loopStart,
			LoopEnd:     c.loopEnd,
			IsPlaying:   c.playing,
			IsRecording: c.recording,
			IsTriggered: c.triggered,
			Color:       c.color,
		}
	}
	return slot
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
