package commands

import "context"

// DownloadRequest describes one requested transfer: either a URL or an
// already-attached file. Exactly one of URL or FileName is set.
type DownloadRequest struct {
	URL       string
	FileName  string
	SizeBytes int64
}

// Downloader is the single interface point behind which real transfer logic
// would live. The dispatch core never depends on anything beyond it, so a
// queueing/transcoding engine can be substituted without touching routing.
type Downloader interface {
	Request(ctx context.Context, req DownloadRequest) (string, error)
}

// StubDownloader acknowledges requests without transferring anything.
type StubDownloader struct{}

// NewStubDownloader creates the placeholder Downloader.
func NewStubDownloader() *StubDownloader {
	return &StubDownloader{}
}

// Request returns a fixed status line for the request.
func (d *StubDownloader) Request(_ context.Context, req DownloadRequest) (string, error) {
	if req.URL != "" {
		return "⏳ Procesando descarga...", nil
	}
	return "✅ Listo para procesar.", nil
}
