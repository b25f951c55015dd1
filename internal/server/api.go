package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/formatter"
	"github.com/desertthunder/mymusic/internal/library"
	"github.com/desertthunder/mymusic/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	requestTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type trackPayload struct {
	ID         string   `json:"id" validate:"required,max=128"`
	Name       string   `json:"name" validate:"max=512"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album" validate:"max=512"`
	URI        string   `json:"uri" validate:"max=256"`
	DurationMS int      `json:"duration_ms"`
	Popularity int      `json:"popularity"`
}

func (p trackPayload) toTrack() models.Track {
	return models.Track{
		ID:         p.ID,
		Name:       p.Name,
		Artists:    p.Artists,
		Album:      p.Album,
		URI:        p.URI,
		DurationMS: p.DurationMS,
		Popularity: p.Popularity,
	}
}

// trackRequest carries either a full track or just a catalog id to look up.
type trackRequest struct {
	Track   *trackPayload `json:"track" validate:"required_without=TrackID"`
	TrackID string        `json:"track_id" validate:"required_without=Track,max=128"`
}

type playlistRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type playlistResponse struct {
	Name      string         `json:"name"`
	Tracks    []models.Track `json:"tracks"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toPlaylistResponse(p *models.Playlist) playlistResponse {
	return playlistResponse{Name: p.Name(), Tracks: p.Tracks(), CreatedAt: p.CreatedAt(), UpdatedAt: p.UpdatedAt()}
}

type userResponse struct {
	Username string `json:"username"`
}

// Pinger reports whether a dependency such as the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// API serves the JSON endpoints of the music discovery service.
type API struct {
	manager  *auth.Manager
	library  *library.Library
	sessions *SessionStore
	metrics  *Metrics
	db       Pinger
	validate *validator.Validate
	logger   *log.Logger
}

// APIOpts contains the dependencies of an [API].
type APIOpts struct {
	Manager  *auth.Manager
	Library  *library.Library
	Sessions *SessionStore
	Metrics  *Metrics
	DB       Pinger
	Logger   *log.Logger
}

// NewAPI creates an API. Sessions and Metrics are created when nil.
func NewAPI(opts APIOpts) *API {
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(0)
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return &API{
		manager:  opts.Manager,
		library:  opts.Library,
		sessions: opts.Sessions,
		metrics:  opts.Metrics,
		db:       opts.DB,
		validate: v,
		logger:   opts.Logger,
	}
}

// Register adds every route to r. Library routes require a session cookie.
func (a *API) Register(r Router) {
	r.Handle(http.MethodGet, "/health", http.HandlerFunc(a.health))
	r.Handler(a.metrics)

	r.Handle(http.MethodPost, "/signup", http.HandlerFunc(a.signup))
	r.Handle(http.MethodPost, "/login", http.HandlerFunc(a.login))
	r.Handle(http.MethodPost, "/logout", http.HandlerFunc(a.logout))

	protected := func(method, path string, fn http.HandlerFunc) {
		r.Handle(method, path, a.sessions.Require(fn))
	}
	protected(http.MethodGet, "/me", a.me)
	protected(http.MethodGet, "/search", a.search)
	protected(http.MethodGet, "/likes", a.listLikes)
	protected(http.MethodPost, "/likes", a.like)
	protected(http.MethodGet, "/downloads", a.listDownloads)
	protected(http.MethodPost, "/downloads", a.download)
	protected(http.MethodGet, "/history", a.history)
	protected(http.MethodGet, "/playlists", a.listPlaylists)
	protected(http.MethodPost, "/playlists", a.createPlaylist)
	protected(http.MethodGet, "/playlists/{name}", a.getPlaylist)
	protected(http.MethodPost, "/playlists/{name}/tracks", a.addToPlaylist)
	protected(http.MethodGet, "/playlists/{name}/export", a.exportPlaylist)
}

// Handler builds a [BasicRouter] with logging and metrics middleware and every route registered.
func (a *API) Handler() http.Handler {
	r := NewBasicRouter()
	r.Use(RequestLogger(a.logger), a.metrics.Middleware)
	a.Register(r)
	return r
}

// RequestLogger logs one line per request at debug level, or warn for 5xx responses.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			kv := []any{"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start)}
			if rec.status >= 500 {
				logger.Warn("request", kv...)
			} else {
				logger.Debug("request", kv...)
			}
		})
	}
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if !errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return false
		}
	}
	return true
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= 500 {
		a.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.PingContext(ctx); err != nil {
			a.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !a.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := a.manager.SignUp(ctx, req.Username, req.Password); err != nil {
		a.metrics.ObserveAuth("signup", outcome(err))
		a.fail(w, r, err)
		return
	}

	a.metrics.ObserveAuth("signup", "success")
	a.logger.Info("account created", "user", req.Username)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Account created successfully! Please log in."})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !a.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	session, err := a.manager.Login(ctx, req.Username, req.Password)
	if err != nil {
		a.metrics.ObserveAuth("login", outcome(err))
		a.fail(w, r, err)
		return
	}

	id, err := a.sessions.Create(session)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.metrics.ObserveAuth("login", "success")
	setSessionCookie(w, r, id, a.sessions.ttl)
	writeJSON(w, http.StatusOK, userResponse{Username: session.Username()})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		a.sessions.Delete(cookie.Value)
	}
	clearSessionCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, auth.ErrValidation):
		return "invalid_password"
	case errors.Is(err, auth.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, auth.ErrUnknownUser):
		return "unknown_user"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userResponse{Username: SessionFrom(r.Context()).Username()})
}

func (a *API) search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	tracks, err := a.library.Search(r.Context(), SessionFrom(r.Context()), r.URL.Query().Get("q"), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": nonNil(tracks)})
}

// resolveTrack returns the request's track, looking it up in the catalog when only an id was sent.
func (a *API) resolveTrack(w http.ResponseWriter, r *http.Request) (models.Track, bool) {
	var req trackRequest
	if !a.decode(w, r, &req) {
		return models.Track{}, false
	}

	if req.Track != nil {
		return req.Track.toTrack(), true
	}

	track, err := a.library.Lookup(r.Context(), SessionFrom(r.Context()), req.TrackID)
	if err != nil {
		a.fail(w, r, err)
		return models.Track{}, false
	}
	return track, true
}

func (a *API) like(w http.ResponseWriter, r *http.Request) {
	track, ok := a.resolveTrack(w, r)
	if !ok {
		return
	}

	if err := a.library.Like(r.Context(), SessionFrom(r.Context()), track); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Song added to liked songs!", "track": track})
}

func (a *API) listLikes(w http.ResponseWriter, r *http.Request) {
	tracks, err := a.library.Likes(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": nonNil(tracks)})
}

func (a *API) download(w http.ResponseWriter, r *http.Request) {
	track, ok := a.resolveTrack(w, r)
	if !ok {
		return
	}

	if err := a.library.Download(r.Context(), SessionFrom(r.Context()), track); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Song downloaded!",
		"track":   track,
		"embed":   formatter.EmbedURL(track.URI),
	})
}

func (a *API) listDownloads(w http.ResponseWriter, r *http.Request) {
	tracks, err := a.library.Downloads(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": nonNil(tracks)})
}

func (a *API) history(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	queries, err := a.library.History(r.Context(), SessionFrom(r.Context()), limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if queries == nil {
		queries = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"queries": queries})
}

func (a *API) listPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := a.library.Playlists(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	out := make([]playlistResponse, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, toPlaylistResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": out})
}

func (a *API) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if !a.decode(w, r, &req) {
		return
	}

	playlist, err := a.library.CreatePlaylist(r.Context(), SessionFrom(r.Context()), req.Name)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlaylistResponse(playlist))
}

func (a *API) getPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := a.library.Playlist(r.Context(), SessionFrom(r.Context()), r.PathValue("name"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlaylistResponse(playlist))
}

func (a *API) addToPlaylist(w http.ResponseWriter, r *http.Request) {
	track, ok := a.resolveTrack(w, r)
	if !ok {
		return
	}

	playlist, err := a.library.AddToPlaylist(r.Context(), SessionFrom(r.Context()), r.PathValue("name"), track)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlaylistResponse(playlist))
}

func (a *API) exportPlaylist(w http.ResponseWriter, r *http.Request) {
	format, err := formatter.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	data, err := a.library.ExportPlaylist(r.Context(), SessionFrom(r.Context()), r.PathValue("name"), format)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func nonNil(tracks []models.Track) []models.Track {
	if tracks == nil {
		return []models.Track{}
	}
	return tracks
}
