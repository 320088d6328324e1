package media

import (
	"fmt"
	"strings"

	"infotainment-agent/pkg/file"
	"infotainment-agent/pkg/notification"

	"github.com/rs/zerolog"
)

// State represents the playback state of the player.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the display form of the playback state.
func (s State) String() string {
	switch s {
	case Stopped:
		return "STOPPED"
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// Track is a single playlist entry.
type Track struct {
	Title       string `yaml:"title"`
	Artist      string `yaml:"artist"`
	Album       string `yaml:"album"`
	DurationSec int    `yaml:"duration_sec"`
}

// Player is a simple playlist-cursor media player for the infotainment
// head unit. Playback is simulated; only the cursor and state move.
type Player struct {
	playlist []Track
	cursor   int
	state    State
	volume   int // 0-100

	fileClient file.FileOperations
	sink       notification.Notifier
	logger     zerolog.Logger
}

// NewPlayer creates a stopped player at 50% volume with an empty playlist.
func NewPlayer(fileClient file.FileOperations, sink notification.Notifier, logger zerolog.Logger) *Player {
	return &Player{
		volume:     50,
		fileClient: fileClient,
		sink:       sink,
		logger:     logger,
	}
}

// AddTrack appends a track to the playlist.
func (p *Player) AddTrack(track Track) {
	p.playlist = append(p.playlist, track)
	p.sink.Notify(fmt.Sprintf("Track added: %s", track.Title), notification.Info)
}

// LoadPlaylist replaces the playlist with the tracks in a YAML file.
func (p *Player) LoadPlaylist(path string) error {
	var tracks []Track
	if err := p.fileClient.ReadYamlFile(path, &tracks); err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("Failed to load playlist")
		return err
	}

	p.playlist = tracks
	p.cursor = 0
	p.logger.Info().Int("tracks", len(tracks)).Str("path", path).Msg("Playlist loaded")
	return nil
}

// Play starts playback of the current track. An empty playlist is a soft
// failure reported through the sink.
func (p *Player) Play() {
	if len(p.playlist) == 0 {
		p.sink.Notify("No tracks in playlist", notification.Warning)
		return
	}
	if p.cursor >= len(p.playlist) {
		p.cursor = 0
	}

	p.state = Playing
	p.sink.Notify(fmt.Sprintf("Now playing: %s", p.playlist[p.cursor].Title), notification.Info)
}

// Pause toggles between paused and playing. It does nothing while stopped.
func (p *Player) Pause() {
	switch p.state {
	case Playing:
		p.state = Paused
	case Paused:
		p.state = Playing
	}
}

// Stop halts playback.
func (p *Player) Stop() {
	p.state = Stopped
}

// Next advances the cursor to the next track, wrapping at the end.
func (p *Player) Next() {
	if len(p.playlist) == 0 {
		return
	}

	p.cursor = (p.cursor + 1) % len(p.playlist)
	if p.state == Playing {
		p.sink.Notify(fmt.Sprintf("Skipped to: %s", p.playlist[p.cursor].Title), notification.Info)
	}
}

// Previous moves the cursor to the previous track, wrapping at the start.
func (p *Player) Previous() {
	if len(p.playlist) == 0 {
		return
	}

	p.cursor = (p.cursor - 1 + len(p.playlist)) % len(p.playlist)
	if p.state == Playing {
		p.sink.Notify(fmt.Sprintf("Previous track: %s", p.playlist[p.cursor].Title), notification.Info)
	}
}

// SetVolume sets the playback volume, clamped to [0, 100].
func (p *Player) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	p.volume = volume
	p.sink.Notify(fmt.Sprintf("Volume set to %d%%", volume), notification.Info)
}

// Volume returns the current volume.
func (p *Player) Volume() int { return p.volume }

// State returns the current playback state.
func (p *Player) State() State { return p.state }

// CurrentTrack returns the track under the cursor, if any.
func (p *Player) CurrentTrack() (Track, bool) {
	if len(p.playlist) == 0 || p.cursor >= len(p.playlist) {
		return Track{}, false
	}
	return p.playlist[p.cursor], true
}

// NowPlayingReport renders the current track and player state.
func (p *Player) NowPlayingReport() string {
	track, ok := p.CurrentTrack()
	if !ok {
		return "No tracks available\n"
	}

	var b strings.Builder
	b.WriteString("=== NOW PLAYING ===\n")
	fmt.Fprintf(&b, "Title: %s\n", track.Title)
	fmt.Fprintf(&b, "Artist: %s\n", track.Artist)
	fmt.Fprintf(&b, "Album: %s\n", track.Album)
	fmt.Fprintf(&b, "Duration: %d:%02d\n", track.DurationSec/60, track.DurationSec%60)
	fmt.Fprintf(&b, "Status: %s\n", p.state)
	fmt.Fprintf(&b, "Volume: %d%%\n", p.volume)
	fmt.Fprintf(&b, "Track: %d/%d\n", p.cursor+1, len(p.playlist))
	return b.String()
}

// PlaylistReport renders the playlist with a cursor marker.
func (p *Player) PlaylistReport() string {
	if len(p.playlist) == 0 {
		return "Playlist is empty\n"
	}

	var b strings.Builder
	b.WriteString("=== PLAYLIST ===\n")
	for i, track := range p.playlist {
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%d. %s - %s\n", marker, i+1, track.Title, track.Artist)
	}
	return b.String()
}
