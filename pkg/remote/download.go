package remote

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Downloader follows export URLs the way a browser would: it fetches the
// attachment and saves it under the server supplied filename.
type Downloader struct {
	Client *Client
	Dir    string
	// Saved is called with the written file path.
	Saved func(path string)
}

// Navigate downloads u into d.Dir.
func (d *Downloader) Navigate(ctx context.Context, u string) error {
	if d.Client == nil {
		return fmt.Errorf("remote: downloader has no client")
	}
	res, err := d.Client.resty.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	body := res.RawBody()
	defer body.Close()

	if res.StatusCode() >= 300 {
		text, _ := io.ReadAll(io.LimitReader(body, 64*1024))
		return &HTTPError{
			Method:     "GET",
			URL:        u,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       string(text),
		}
	}

	name := AttachmentName(res.Header().Get("Content-Disposition"), u)
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	target, err := save(dir, name, body)
	if err != nil {
		return err
	}
	if d.Saved != nil {
		d.Saved(target)
	}
	return nil
}

// save streams body into a temporary file next to the target and renames it
// into place once complete. An existing export is never overwritten.
func save(dir, name string, body io.Reader) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+name+".part-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", filepath.Join(dir, name), err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	target := unusedPath(dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", err
	}
	return target, nil
}

// unusedPath returns dir/name, or dir/"name (n).ext" when that is taken.
func unusedPath(dir, name string) string {
	target := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			return target
		}
		target = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
	}
}

// AttachmentName picks a safe local filename from a Content-Disposition
// header, falling back to the last segment of the URL path.
func AttachmentName(disposition, rawURL string) string {
	if name := sanitize(dispositionFilename(disposition)); name != "" {
		return name
	}
	fallback := "export"
	if u, err := url.Parse(rawURL); err == nil {
		segs := strings.Split(strings.Trim(u.Path, "/"), "/")
		if n := len(segs); n >= 3 && segs[n-2] == "export" {
			fallback = segs[n-3] + "." + segs[n-1]
		} else if base := path.Base(u.Path); base != "." && base != "/" {
			fallback = base
		}
	}
	return sanitize(fallback)
}

// dispositionFilename reads the filename parameter. Servers often send it
// unquoted with characters a strict parser rejects, so those are read as is.
func dispositionFilename(disposition string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		return params["filename"]
	}
	for _, part := range strings.Split(disposition, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "filename") {
			return strings.Trim(strings.TrimSpace(value), `"`)
		}
	}
	return ""
}

func sanitize(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return ""
	}
	return name
}

// URLPrinter is a navigator that only reports the URL.
type URLPrinter struct {
	Out io.Writer
}

// Navigate prints u.
func (p URLPrinter) Navigate(_ context.Context, u string) error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintln(out, u)
	return err
}
