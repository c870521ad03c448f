package geojson

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Write streams a FeatureCollection document to w, serializing one feature
// at a time so the full document never has to exist in memory.
func Write(w io.Writer, features []Feature) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("{\"type\":\"FeatureCollection\",\"features\":[\n"); err != nil {
		return eris.Wrap(err, "geojson: write envelope")
	}

	for i, feat := range features {
		data, err := json.Marshal(feat)
		if err != nil {
			return eris.Wrapf(err, "geojson: marshal feature %d", i)
		}
		if i > 0 {
			if _, err := bw.WriteString(",\n"); err != nil {
				return eris.Wrap(err, "geojson: write separator")
			}
		}
		if _, err := bw.Write(data); err != nil {
			return eris.Wrap(err, "geojson: write feature")
		}
	}

	if _, err := bw.WriteString("\n]}"); err != nil {
		return eris.Wrap(err, "geojson: write envelope")
	}
	if err := bw.Flush(); err != nil {
		return eris.Wrap(err, "geojson: flush")
	}
	return nil
}

// WriteFile writes the collection to path through a temp file renamed on
// success, so a failed run never leaves a truncated document behind.
func WriteFile(path string, features []Feature) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "geojson: create temp file")
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := Write(tmp, features); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "geojson: close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrap(err, "geojson: rename output into place")
	}
	return nil
}
