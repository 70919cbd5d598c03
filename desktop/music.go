package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// Seconds until a new track reaches full volume
const fadeInSeconds = 10.0

// jukebox loops the music of the current level
type jukebox struct {
	context *audio.Context
	player  *audio.Player
	path    string
	volume  float64
}

func newJukebox(context *audio.Context) *jukebox {
	return &jukebox{context: context}
}

// Play switches to the mp3 at path. An empty path stops the music.
func (j *jukebox) Play(path string) {
	if path == j.path {
		return
	}
	j.Stop()
	if path == "" {
		return
	}

	player, err := j.load(path)
	if err != nil {
		log.Printf("Music disabled: %v", err)
		return
	}
	j.player = player
	j.path = path
	j.volume = 0
	j.player.SetVolume(0)
	j.player.Play()
}

func (j *jukebox) load(path string) (*audio.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	stream, err := mp3.DecodeWithSampleRate(j.context.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
	}

	player, err := j.context.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// Update raises the volume of a fading-in track
func (j *jukebox) Update(dt float64) {
	if j.player == nil || j.volume >= 1 {
		return
	}
	j.volume = min(1, j.volume+dt/fadeInSeconds)
	j.player.SetVolume(j.volume)
}

func (j *jukebox) Stop() {
	if j.player != nil {
		j.player.Close()
	}
	j.player = nil
	j.path = ""
}
