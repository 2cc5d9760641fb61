package extractor

import (
	"path/filepath"
	"testing"

	"github.com/iambhvsh/ytdl/internal/core/youtube"
)

func TestParseInfoVideo(t *testing.T) {
	data := `{
		"_type": "video",
		"id": "dQw4w9WgXcQ",
		"title": "Never Gonna Give You Up",
		"uploader": "Rick Astley",
		"duration": 212,
		"view_count": 1500000000,
		"webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	}`

	info, err := parseInfo([]byte(data))
	if err != nil {
		t.Fatalf("parseInfo() error: %v", err)
	}
	if info.Title != "Never Gonna Give You Up" || info.Uploader != "Rick Astley" {
		t.Errorf("info = %+v", info)
	}
	if info.Duration != 212 {
		t.Errorf("Duration = %v; want 212", info.Duration)
	}
	if info.ViewCount != 1500000000 {
		t.Errorf("ViewCount = %d", info.ViewCount)
	}
	if info.IsPlaylist() {
		t.Error("single video classified as playlist")
	}
	if info.Kind() != youtube.KindVideo {
		t.Errorf("Kind() = %v", info.Kind())
	}
}

func TestParseInfoPlaylist(t *testing.T) {
	data := `{
		"_type": "playlist",
		"id": "PL123",
		"title": "Mix",
		"channel": "Some Channel",
		"playlist_count": 3,
		"entries": [
			{"id": "aaaaaaaaaaa", "title": "One", "url": "https://www.youtube.com/watch?v=aaaaaaaaaaa", "duration": 60},
			null,
			{"id": "bbbbbbbbbbb", "title": "Two"},
			{"id": "ccccccccccc", "title": "Three", "url": "https://www.youtube.com/watch?v=ccccccccccc"}
		]
	}`

	info, err := parseInfo([]byte(data))
	if err != nil {
		t.Fatalf("parseInfo() error: %v", err)
	}
	if !info.IsPlaylist() || info.Kind() != youtube.KindPlaylist {
		t.Fatal("playlist not detected")
	}
	if info.EntryCount != 3 || len(info.Entries) != 3 {
		t.Errorf("EntryCount = %d, entries = %d; want 3", info.EntryCount, len(info.Entries))
	}
	if info.Uploader != "Some Channel" {
		t.Errorf("Uploader = %q; want channel fallback", info.Uploader)
	}
	if got := info.Entries[1].URL; got != "https://www.youtube.com/watch?v=bbbbbbbbbbb" {
		t.Errorf("entry URL = %q", got)
	}
	if info.ViewCount != -1 {
		t.Errorf("missing view_count should be -1, got %d", info.ViewCount)
	}
}

func TestParseInfoSingleEntryPlaylist(t *testing.T) {
	data := `{"_type": "playlist", "id": "PL1", "title": "Solo", "entries": [{"id": "aaaaaaaaaaa", "title": "Only"}]}`
	info, err := parseInfo([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.IsPlaylist() {
		t.Error("a playlist with one entry should be treated as a single video")
	}
}

func TestParseInfoDefaults(t *testing.T) {
	info, err := parseInfo([]byte(`{"id": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "Unknown" || info.Uploader != "Unknown" {
		t.Errorf("defaults not applied: %+v", info)
	}
	if info.EntryCount != 1 {
		t.Errorf("EntryCount = %d; want 1", info.EntryCount)
	}
}

func TestParseInfoErrors(t *testing.T) {
	if _, err := parseInfo([]byte("   ")); err == nil {
		t.Error("expected error for empty output")
	}
	if _, err := parseInfo([]byte("not json")); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestFinalPath(t *testing.T) {
	tests := []struct {
		filename string
		ext      string
		want     string
	}{
		{"/dl/Videos/Title.f137.mp4", "mp4", "/dl/Videos/Title.mp4"},
		{"/dl/Videos/Title.f251.webm", "mp4", "/dl/Videos/Title.mp4"},
		{"/dl/Audios/Song.webm", "mp3", "/dl/Audios/Song.mp3"},
		{"/dl/Videos/Title.mp4", "mp4", "/dl/Videos/Title.mp4"},
		{"/dl/Videos/v1.2 final.mp4", "mp4", "/dl/Videos/v1.2 final.mp4"},
		{"/dl/Videos/Title.mp4", "", "/dl/Videos/Title.mp4"},
		{"", "mp4", ""},
	}
	for _, tt := range tests {
		if got := FinalPath(tt.filename, tt.ext); got != tt.want {
			t.Errorf("FinalPath(%q, %q) = %q; want %q", tt.filename, tt.ext, got, tt.want)
		}
	}
}

func TestResultAccumulatorCountsEntriesOnce(t *testing.T) {
	acc := newResultAccumulator(Request{Quality: youtube.QualityBest, MergeFormat: "mp4"})

	events := []Event{
		{Status: StatusDownloading, VideoID: "a", Filename: "/d/A.f137.mp4", Downloaded: 10, Total: 100},
		{Status: StatusFinished, VideoID: "a", Filename: "/d/A.f137.mp4"},
		{Status: StatusDownloading, VideoID: "a", Filename: "/d/A.f140.m4a"},
		{Status: StatusFinished, VideoID: "a", Filename: "/d/A.f140.m4a"},
		{Status: StatusDownloading, VideoID: "b", Filename: "/d/B.f137.mp4"},
		{Status: StatusError, VideoID: "b"},
	}
	for _, ev := range events {
		acc.observe(ev)
	}

	var r Result
	acc.fill(&r)
	if r.Completed != 1 {
		t.Errorf("Completed = %d; want 1", r.Completed)
	}
	if r.Attempted != 2 {
		t.Errorf("Attempted = %d; want 2", r.Attempted)
	}
	if len(r.Files) != 1 || r.Files[0] != "/d/A.mp4" {
		t.Errorf("Files = %v; want [/d/A.mp4]", r.Files)
	}
	if r.LastFile() != "/d/A.mp4" {
		t.Errorf("LastFile() = %q", r.LastFile())
	}
}

func TestResultLastFileEmpty(t *testing.T) {
	var r *Result
	if r.LastFile() != "" {
		t.Error("nil result should have no last file")
	}
}

func TestOutputTemplate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"video from title", Request{}, "%(title)s.%(ext)s"},
		{"video with name", Request{Filename: "My Song"}, "My Song.%(ext)s"},
		{"percent escaped", Request{Filename: "100% Live"}, "100%% Live.%(ext)s"},
		{"playlist from title", Request{Playlist: true}, filepath.Join("%(playlist_title)s", "%(playlist_index)03d - %(title)s.%(ext)s")},
		{"playlist folder", Request{Playlist: true, Filename: "Mix"}, filepath.Join("Mix", "%(playlist_index)03d - %(title)s.%(ext)s")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputTemplate(tt.req); got != tt.want {
				t.Errorf("outputTemplate() = %q; want %q", got, tt.want)
			}
		})
	}
}
