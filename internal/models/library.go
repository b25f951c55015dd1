package models

// LikedSong is a track a user liked.
type LikedSong struct {
	record
	username string
	track    Track
}

// NewLikedSong creates a like owned by username.
func NewLikedSong(sequence int, username string, track Track) *LikedSong {
	return &LikedSong{record: newRecord(sequence), username: username, track: track}
}

func (l *LikedSong) Username() string { return l.username }
func (l *LikedSong) Track() Track     { return l.track }

func (l *LikedSong) Validate() error {
	return validateOwnedTrack(l.username, l.track)
}

// Download is a track a user marked as downloaded.
//
// It is bookkeeping only; no audio is fetched.
type Download struct {
	record
	username string
	track    Track
}

// NewDownload creates a download record owned by username.
func NewDownload(sequence int, username string, track Track) *Download {
	return &Download{record: newRecord(sequence), username: username, track: track}
}

func (d *Download) Username() string { return d.username }
func (d *Download) Track() Track     { return d.track }

func (d *Download) Validate() error {
	return validateOwnedTrack(d.username, d.track)
}

// SearchRecord is one entry of a user's search history.
type SearchRecord struct {
	record
	username string
	query    string
}

// NewSearchRecord creates a history entry owned by username.
func NewSearchRecord(sequence int, username, query string) *SearchRecord {
	return &SearchRecord{record: newRecord(sequence), username: username, query: query}
}

func (s *SearchRecord) Username() string { return s.username }
func (s *SearchRecord) Query() string    { return s.query }

func (s *SearchRecord) Validate() error {
	if s.username == "" {
		return ErrMissingUsername
	}
	if s.query == "" {
		return ErrMissingQuery
	}
	return nil
}

// Playlist is a named, ordered list of tracks owned by one user. Names are unique per user.
type Playlist struct {
	record
	username string
	name     string
	tracks   []Track
}

// NewPlaylist creates an empty playlist.
func NewPlaylist(sequence int, username, name string) *Playlist {
	return &Playlist{record: newRecord(sequence), username: username, name: name, tracks: []Track{}}
}

func (p *Playlist) Username() string { return p.username }
func (p *Playlist) Name() string     { return p.name }

// Tracks returns a copy of the playlist's tracks.
func (p *Playlist) Tracks() []Track {
	return append([]Track(nil), p.tracks...)
}

// SetTracks replaces the track list.
func (p *Playlist) SetTracks(tracks []Track) {
	p.tracks = append([]Track(nil), tracks...)
}

// Contains reports whether a track with trackID is already in the playlist.
func (p *Playlist) Contains(trackID string) bool {
	for _, t := range p.tracks {
		if t.ID == trackID {
			return true
		}
	}
	return false
}

// Append adds track to the end of the list.
func (p *Playlist) Append(track Track) {
	p.tracks = append(p.tracks, track)
}

func (p *Playlist) Validate() error {
	if p.username == "" {
		return ErrMissingUsername
	}
	if p.name == "" {
		return ErrMissingName
	}
	return nil
}

func validateOwnedTrack(username string, track Track) error {
	if username == "" {
		return ErrMissingUsername
	}
	if track.ID == "" {
		return ErrMissingTrack
	}
	return nil
}
