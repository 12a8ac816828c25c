package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"golang.org/x/net/html"
)

var ErrSpreadsheetLinkNotFound = errors.New("spreadsheet link not found")

// DiscoverSpreadsheet looks for the first link on the statistics page matching pattern
// and returns its absolute URL.
func DiscoverSpreadsheet(ctx context.Context, client *http.Client, pageURL, pattern string) (string, error) {
	linkRegExp, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to compile link pattern: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse page url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create page request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get statistics page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to get statistics page: unexpected status %s", resp.Status)
	}

	href, err := findLink(resp.Body, linkRegExp)
	if err != nil {
		return "", err
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("failed to parse link %q: %w", href, err)
	}

	return base.ResolveReference(ref).String(), nil
}

func findLink(r io.Reader, linkRegExp *regexp.Regexp) (string, error) {
	z := html.NewTokenizer(r)

	for {
		tokenType := z.Next()

		switch tokenType {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return "", ErrSpreadsheetLinkNotFound
			}
			return "", fmt.Errorf("failed to tokenize page: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			if token.Data != "a" {
				continue
			}

			for _, attr := range token.Attr {
				if attr.Key == "href" && linkRegExp.MatchString(attr.Val) {
					return attr.Val, nil
				}
			}
		default:
			continue
		}
	}
}

// Download stores the file at fileURL in dir under its original name and returns the local path.
func Download(ctx context.Context, client *http.Client, fileURL, dir string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse file url: %w", err)
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return "", fmt.Errorf("file url %q has no file name", fileURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to download %s: unexpected status %s", name, resp.Status)
	}

	localPath := filepath.Join(dir, name)
	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer file.Close()

	_, err = io.Copy(file, resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", localPath, err)
	}

	return localPath, nil
}
