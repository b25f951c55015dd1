package library

import "errors"

var (
	ErrEmptyQuery          = errors.New("please enter a search query")
	ErrMissingPlaylistName = errors.New("please enter a playlist name")
	ErrPlaylistExists      = errors.New("a playlist with that name already exists")
	ErrPlaylistNotFound    = errors.New("playlist not found, please create the playlist first")
	ErrAlreadyInPlaylist   = errors.New("this song is already in the playlist")
	ErrMissingTrack        = errors.New("a track with an id is required")
	ErrStorage             = errors.New("library storage failed")
)
