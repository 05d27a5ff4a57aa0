package dataset

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"fmt"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseURL is where Kaggle serves dataset archives from.
const DefaultBaseURL = "https://www.kaggle.com/api/v1/datasets/download"

// KaggleDownloader downloads dataset archives identified as "owner/slug" and extracts them. Archives are kept in a
// diskv store, so a dataset is only fetched over the network once.
type KaggleDownloader struct {
	baseURL  string
	dir      string
	username string
	key      string
	progress io.Writer
	client   *http.Client
	store    *diskv.Diskv
}

// KaggleBaseURL sets the url archives are fetched from.
func KaggleBaseURL(url string) func(d *KaggleDownloader) {
	return func(d *KaggleDownloader) {
		d.baseURL = strings.TrimSuffix(url, "/")
	}
}

// KaggleCredentials sets the username and API key sent with each request.
func KaggleCredentials(username, key string) func(d *KaggleDownloader) {
	return func(d *KaggleDownloader) {
		d.username = username
		d.key = key
	}
}

// KaggleProgress writes a progress bar for each download to w.
func KaggleProgress(w io.Writer) func(d *KaggleDownloader) {
	return func(d *KaggleDownloader) {
		d.progress = w
	}
}

// KaggleHTTPClient sets the client used to make requests.
func KaggleHTTPClient(c *http.Client) func(d *KaggleDownloader) {
	return func(d *KaggleDownloader) {
		d.client = c
	}
}

// NewKaggleDownloader creates a downloader that extracts datasets under dir. When no credentials are supplied, the
// KAGGLE_USERNAME and KAGGLE_KEY environment variables are used if set.
func NewKaggleDownloader(dir string, options ...func(d *KaggleDownloader)) *KaggleDownloader {
	d := &KaggleDownloader{
		baseURL:  DefaultBaseURL,
		dir:      dir,
		username: os.Getenv("KAGGLE_USERNAME"),
		key:      os.Getenv("KAGGLE_KEY"),
		client:   http.DefaultClient,
	}
	for _, o := range options {
		o(d)
	}
	d.store = diskv.New(diskv.Options{
		BasePath:     filepath.Join(dir, "archives"),
		Transform:    archivePath,
		CacheSizeMax: 16 * 1024 * 1024,
	})
	return d
}

func archiveKey(datasetID string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(datasetID)))
}

// archivePath stores an archive two directories deep, named by the first two byte pairs of its key.
func archivePath(key string) []string {
	if len(key) < 4 {
		return nil
	}
	return []string{key[:2], key[2:4]}
}

// Download makes the dataset available on disk and returns the directory it was extracted to.
func (d *KaggleDownloader) Download(datasetID string) (string, error) {
	parts := strings.Split(datasetID, "/")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return "", errors.Wrapf(ErrDataUnavailable, "dataset id %q is not of the form owner/slug", datasetID)
	}

	key := archiveKey(datasetID)
	var archive []byte
	if d.store.Has(key) {
		log.Printf("using cached archive for %s\n", datasetID)
		b, err := d.store.Read(key)
		if err != nil {
			return "", errors.Wrapf(ErrDataUnavailable, "reading cached archive: %v", err)
		}
		archive = b
	} else {
		b, err := d.fetch(datasetID)
		if err != nil {
			return "", err
		}
		if err := d.store.Write(key, b); err != nil {
			return "", errors.Wrapf(ErrDataUnavailable, "caching archive: %v", err)
		}
		archive = b
	}

	target := filepath.Join(d.dir, parts[0], parts[1])
	if err := extract(archive, target); err != nil {
		// A corrupt archive should not be served from the cache again.
		_ = d.store.Erase(key)
		return "", errors.Wrapf(ErrDataUnavailable, "extracting %s: %v", datasetID, err)
	}
	return target, nil
}

func (d *KaggleDownloader) fetch(datasetID string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", d.baseURL, datasetID)
	log.Printf("downloading %s\n", url)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "%v", err)
	}
	if len(d.username) > 0 {
		req.SetBasicAuth(d.username, d.key)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "%v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrDataUnavailable, "%s returned %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if d.progress != nil && resp.ContentLength > 0 {
		bar := pb.New(int(resp.ContentLength)).SetUnits(pb.U_BYTES)
		bar.Output = d.progress
		bar.Start()
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}
	b, err := ioutil.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(ErrDataUnavailable, "%v", err)
	}
	return b, nil
}

func extract(archive []byte, dir string) error {
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, f := range r.File {
		name := filepath.Join(dir, filepath.Clean(f.Name))
		if !strings.HasPrefix(name, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s", f.Name, dir)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(name, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return err
		}
		if err := extractFile(f, name); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, name string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
