package dataset_test

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"fmt"
	"github.com/hscells/incomegroup/dataset"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func archive(t *testing.T, files map[string]string) []byte {
	var b bytes.Buffer
	w := zip.NewWriter(&b)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func TestKaggleDownloader(t *testing.T) {
	csv, err := ioutil.ReadFile("testdata/income.csv")
	if err != nil {
		t.Fatal(err)
	}
	body := archive(t, map[string]string{"income.csv": string(csv)})

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/owner/kmean-data" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	dir, err := ioutil.TempDir("", "incomegroup")
	if err != nil {
		t.Fatal(err)
	}

	d := dataset.NewKaggleDownloader(dir, dataset.KaggleBaseURL(srv.URL))
	src := dataset.DownloadSource{Downloader: d, DatasetID: "owner/kmean-data"}
	ds, err := src.Load()
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 22 {
		t.Errorf("expected 22 records, got %d", ds.Len())
	}

	// The archive is cached, so the server is not needed the second time around.
	srv.Close()
	path, err := d.Download("owner/kmean-data")
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "owner", "kmean-data") {
		t.Errorf("unexpected download directory %s", path)
	}
	if requests != 1 {
		t.Errorf("expected one request, got %d", requests)
	}

	key := fmt.Sprintf("%x", sha1.Sum([]byte("owner/kmean-data")))
	cached, err := ioutil.ReadFile(filepath.Join(dir, "archives", key[:2], key[2:4], key))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(body, cached) {
		t.Error("cached archive differs from the downloaded one")
	}
}

func TestKaggleDownloaderFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir, err := ioutil.TempDir("", "incomegroup")
	if err != nil {
		t.Fatal(err)
	}
	d := dataset.NewKaggleDownloader(dir, dataset.KaggleBaseURL(srv.URL))

	for _, id := range []string{"no-slash", "owner/missing"} {
		_, err := dataset.DownloadSource{Downloader: d, DatasetID: id}.Load()
		if !dataset.IsUnavailable(err) {
			t.Errorf("%s: expected dataset unavailable, got %v", id, err)
		}
	}
}

func TestFindCSV(t *testing.T) {
	dir, err := ioutil.TempDir("", "incomegroup")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dataset.FindCSV(dir); !dataset.IsUnavailable(err) {
		t.Errorf("expected an error for an empty directory, got %v", err)
	}
	for _, name := range []string{"a.csv", "README.md"} {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte("Age,Income($)\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := dataset.FindCSV(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "a.csv") {
		t.Errorf("unexpected csv %s", got)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "b.csv"), []byte("Age,Income($)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := dataset.FindCSV(dir); !dataset.IsUnavailable(err) {
		t.Errorf("expected an error for two csv files, got %v", err)
	}
}
