package flow

import (
	"context"
	"fmt"
	"net/http"

	"bookforge/pkg/domain"
)

var downloadFormats = []string{"pdf", "docx", "epub"}

// Download fetches the finished artifact in the chosen format and saves it
// under the data directory.
func (f *Flow) Download(ctx context.Context, bookID string) error {
	f.session.LoadMyBooks()
	f.println()
	format, err := f.promptChoice("Download format", downloadFormats, f.defaultFormat)
	if err != nil {
		return err
	}

	url, err := f.api.GetDownloadURL(ctx, bookID, format)
	if err != nil {
		f.alert("Download Failed", err.Error())
		return nil
	}

	path, err := f.fetchArtifact(ctx, bookID, format, url)
	if err != nil {
		f.alert("Download Failed", err.Error())
		return nil
	}

	f.session.UpdateBook(bookID, func(b *domain.Book) {
		b.Status = domain.StatusComplete
		b.Progress = 100
	})
	f.printf("Saved to %s\n", path)
	f.println("A copy has also been emailed to you for safekeeping.")
	return nil
}

func (f *Flow) fetchArtifact(ctx context.Context, bookID, format, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.downloader.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch artifact: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch artifact: %s", resp.Status)
	}
	return f.files.SaveArtifact(bookID, format, resp.Body)
}
