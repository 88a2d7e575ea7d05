package mediagroup

import (
	"sync"
	"time"
)

// Item is one photo of a Telegram album.
type Item struct {
	ChatID       int64
	UserID       int64
	LanguageCode string
	MediaGroupID string
	Caption      string
	FileID       string
}

// Album is what survives the debounce: the first photo, the first non-empty
// caption and how many photos arrived in total.
type Album struct {
	ChatID       int64
	UserID       int64
	LanguageCode string
	Caption      string
	FileID       string
	Count        int
}

type Options struct {
	Debounce time.Duration
	OnFlush  func(Album)
}

// Aggregator collapses album updates, which Telegram delivers one message
// per photo, into a single Album per media group.
type Aggregator struct {
	mu       sync.Mutex
	debounce time.Duration
	onFlush  func(Album)
	pending  map[albumKey]*pendingAlbum
	stopped  bool
}

type albumKey struct {
	chatID  int64
	groupID string
}

type pendingAlbum struct {
	album Album
	timer *time.Timer
}

func New(opts Options) *Aggregator {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 1200 * time.Millisecond
	}

	return &Aggregator{
		debounce: debounce,
		onFlush:  opts.OnFlush,
		pending:  make(map[albumKey]*pendingAlbum),
	}
}

// Add records item and restarts its album's debounce. Items without a media
// group or file id, and items arriving after Stop, are ignored.
func (a *Aggregator) Add(item Item) {
	if item.MediaGroupID == "" || item.FileID == "" {
		return
	}
	key := albumKey{chatID: item.ChatID, groupID: item.MediaGroupID}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	p, ok := a.pending[key]
	if !ok {
		p = &pendingAlbum{album: Album{
			ChatID:       item.ChatID,
			UserID:       item.UserID,
			LanguageCode: item.LanguageCode,
			FileID:       item.FileID,
		}}
		a.pending[key] = p
	} else {
		p.timer.Stop()
	}

	p.album.Count++
	if p.album.Caption == "" {
		p.album.Caption = item.Caption
	}
	p.timer = time.AfterFunc(a.debounce, func() { a.flush(key) })
}

// Pending reports how many albums are waiting for their debounce.
func (a *Aggregator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Stop drops buffered albums and rejects further items.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	for key, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, key)
	}
}

func (a *Aggregator) flush(key albumKey) {
	a.mu.Lock()
	p, ok := a.pending[key]
	if ok {
		delete(a.pending, key)
	}
	a.mu.Unlock()

	if ok && a.onFlush != nil {
		a.onFlush(p.album)
	}
}
