package dataset

import (
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// ErrDataUnavailable is returned when a dataset cannot be downloaded or read. It is not retryable without someone
// fixing the source.
var ErrDataUnavailable = errors.New("dataset unavailable")

// IsUnavailable reports whether err was caused by a dataset that could not be fetched or read.
func IsUnavailable(err error) bool {
	return errors.Cause(err) == ErrDataUnavailable
}

// Source is somewhere a dataset can be loaded from.
type Source interface {
	Load() (Dataset, error)
}

// FileSource loads a dataset from a CSV file on disk.
type FileSource struct {
	Path string
}

// Load reads and parses the file.
func (s FileSource) Load() (Dataset, error) {
	f, err := os.OpenFile(s.Path, os.O_RDONLY, 0664)
	if err != nil {
		return Dataset{}, errors.Wrapf(ErrDataUnavailable, "%v", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// Downloader fetches a dataset from a remote repository into a local directory.
type Downloader interface {
	Download(datasetID string) (string, error)
}

// DownloadSource loads a dataset through a Downloader. The downloaded directory must contain exactly one csv file.
type DownloadSource struct {
	Downloader Downloader
	DatasetID  string
}

// Load downloads the dataset and reads its csv file.
func (s DownloadSource) Load() (Dataset, error) {
	dir, err := s.Downloader.Download(s.DatasetID)
	if err != nil {
		if IsUnavailable(err) {
			return Dataset{}, err
		}
		return Dataset{}, errors.Wrapf(ErrDataUnavailable, "downloading %s: %v", s.DatasetID, err)
	}
	file, err := FindCSV(dir)
	if err != nil {
		return Dataset{}, err
	}
	return FileSource{Path: file}.Load()
}

// FindCSV returns the path of the single csv file in dir.
func FindCSV(dir string) (string, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(ErrDataUnavailable, "%v", err)
	}
	var found []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name()), ".csv") {
			found = append(found, filepath.Join(dir, f.Name()))
		}
	}
	switch len(found) {
	case 0:
		return "", errors.Wrapf(ErrDataUnavailable, "no csv file in %s", dir)
	case 1:
		return found[0], nil
	default:
		return "", errors.Wrapf(ErrDataUnavailable, "expected one csv file in %s, found %d", dir, len(found))
	}
}
