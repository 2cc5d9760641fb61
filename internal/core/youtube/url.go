package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind is the classification of a URL.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideo
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindPlaylist:
		return "playlist"
	}
	return "unknown"
}

const hostPrefix = `(?i)^(?:https?://)?(?:(?:www|m|music)\.)?`

var (
	watchRe    = regexp.MustCompile(hostPrefix + `youtube\.com/watch\?(?:\S*&)?v=[\w-]{11}`)
	playlistRe = regexp.MustCompile(hostPrefix + `youtube\.com/playlist\?(?:\S*&)?list=[\w-]+`)
	shortRe    = regexp.MustCompile(`(?i)^(?:https?://)?youtu\.be/[\w-]{11}`)
	shortsRe   = regexp.MustCompile(hostPrefix + `youtube\.com/shorts/[\w-]{11}`)
	channelRe  = regexp.MustCompile(hostPrefix + `youtube\.com/channel/[\w-]+`)
	userRe     = regexp.MustCompile(hostPrefix + `youtube\.com/(?:user|c)/[\w.-]+`)
	handleRe   = regexp.MustCompile(hostPrefix + `youtube\.com/@[\w.-]+`)

	videoIDRe = regexp.MustCompile(`^[\w-]{11}$`)
)

// collectionPatterns match pages that always list several videos.
var collectionPatterns = []*regexp.Regexp{playlistRe, channelRe, userRe, handleRe}

var urlPatterns = []*regexp.Regexp{watchRe, playlistRe, shortRe, shortsRe, channelRe, userRe, handleRe}

// IsValidURL reports whether s looks like a YouTube watch, playlist, short
// link, shorts, channel, user or handle URL.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, re := range urlPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// HasPlaylistParam reports whether the URL names a playlist, either through a
// list= query parameter or by pointing at a channel-like page.
func HasPlaylistParam(s string) bool {
	s = strings.TrimSpace(s)
	for _, re := range collectionPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return PlaylistID(s) != ""
}

// GuessKind classifies a URL from its shape alone. It is the fallback used
// when the metadata probe is unavailable.
func GuessKind(s string) Kind {
	if !IsValidURL(s) {
		return KindUnknown
	}
	if HasPlaylistParam(s) {
		return KindPlaylist
	}
	return KindVideo
}

// VideoID extracts the 11 character video ID, or "" when there is none.
func VideoID(s string) string {
	u, err := parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	switch {
	case host == "youtu.be":
		id := strings.Trim(u.Path, "/")
		if videoIDRe.MatchString(id) {
			return id
		}
	case strings.HasSuffix(host, "youtube.com"):
		if id := u.Query().Get("v"); videoIDRe.MatchString(id) {
			return id
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok {
			id := strings.SplitN(rest, "/", 2)[0]
			if videoIDRe.MatchString(id) {
				return id
			}
		}
	}
	return ""
}

// PlaylistID returns the list= parameter, or "".
func PlaylistID(s string) string {
	u, err := parse(s)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}

func parse(s string) (*url.URL, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	return url.Parse(s)
}
