// package formatter renders tracks and playlists as CSV, Markdown, plain text and HTML,
// and builds catalog embed links for playback.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/mymusic/internal/models"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/yuin/goldmark"
)

const embedBase = "https://open.spotify.com/embed/track/"

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the short and long spellings of each format. Empty defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// Ext returns the file extension, without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// EmbedURL returns the embeddable player URL for a track URI such as "spotify:track:<id>".
//
// Only the last ':'-separated segment is used, so a bare ID works as well.
func EmbedURL(uri string) string {
	id := uri
	if i := strings.LastIndex(uri, ":"); i >= 0 {
		id = uri[i+1:]
	}
	return embedBase + id
}

// EmbedIframe returns an iframe tag for the player. compact selects the single-row player.
func EmbedIframe(uri string, compact bool) string {
	height := 352
	if compact {
		height = 80
	}
	return fmt.Sprintf(
		`<iframe src="%s" width="300" height="%d" frameborder="0" allowtransparency="true" allow="encrypted-media"></iframe>`,
		EmbedURL(uri), height,
	)
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ExportCSV converts tracks to CSV with columns: ID, Name, Artist, Album, Duration, URI, Embed
func ExportCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Album", "Duration", "URI", "Embed"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Name,
			track.Artist(),
			track.Album,
			strconv.Itoa(track.Duration()),
			track.URI,
			EmbedURL(track.URI),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportMarkdown renders a titled, numbered track list with a player link per track.
func ExportMarkdown(title string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(tracks))

	if len(tracks) == 0 {
		buf.WriteString("_No tracks yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		fmt.Fprintf(&buf, "%d. %s - %s%s [%s] ([play](%s))\n",
			i+1, track.Artist(), track.Name, albumPart, FormatDuration(track.Duration()), EmbedURL(track.URI))
	}

	return buf.Bytes(), nil
}

// ExportText renders a titled track list as plain text.
func ExportText(title string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", title)
	fmt.Fprintf(&buf, "Tracks: %d\n\n", len(tracks))

	for i, track := range tracks {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, track.Artist(), track.Name)
	}

	return buf.Bytes(), nil
}

// RenderHTML converts Markdown to HTML. Raw HTML in the input is not passed through.
func RenderHTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders tracks in format f.
func Export(f Format, title string, tracks []models.Track) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportCSV(tracks)
	case FormatMarkdown:
		return ExportMarkdown(title, tracks)
	case FormatText:
		return ExportText(title, tracks)
	case FormatHTML:
		md, err := ExportMarkdown(title, tracks)
		if err != nil {
			return nil, err
		}
		return RenderHTML(md)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// WriteExport renders tracks in format f to <dir>/<base>.<ext> and returns the file path.
//
// dir is created if needed.
func WriteExport(f Format, dir, base, title string, tracks []models.Track) (string, error) {
	data, err := Export(f, title, tracks)
	if err != nil {
		return "", err
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	path := filepath.Join(dir, SafeFilename(base)+"."+f.Ext())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}

// SafeFilename replaces characters that are unsafe in file names with underscores.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "untitled"
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 32 {
			return '_'
		}
		return r
	}, name)
}
