// Package store keeps one YAML file per form entry in a flat directory.
package store

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
)

const Ext = ".yaml"

var ErrNotFound = errors.New("entry not found")

// DeserializationError reports an entry file that exists but cannot be decoded.
type DeserializationError struct {
	Filename string
	Err      error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode entry %s: %s", e.Filename, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

type Store struct {
	fs billy.Filesystem
}

func Open(cfg config.Config) *Store {
	log.Debugf("store.open: %s", cfg.DataDir)
	return New(osfs.New(cfg.DataDir))
}

// New returns a store over the root of fs.
func New(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// ListFilenames returns entry filenames, newest first. A missing directory
// holds no entries.
func (s *Store) ListFilenames() ([]string, error) {
	infos, err := s.fs.ReadDir(".")
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "store.list")
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.Mode().IsRegular() && strings.HasSuffix(info.Name(), Ext) {
			names = append(names, info.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ResolvePath maps a client-supplied filename to its location in the store.
// The name is checked before the filesystem is touched.
func (s *Store) ResolvePath(filename string) (string, error) {
	if !validName(filename) {
		return "", ErrNotFound
	}

	info, err := s.fs.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", errors.Wrapf(err, "store.stat %s", filename)
	}
	if !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return filename, nil
}

// maxNameLen is the usual NAME_MAX; longer names are refused by the OS.
const maxNameLen = 255

func validName(filename string) bool {
	return filename != "" &&
		len(filename) <= maxNameLen &&
		!strings.ContainsAny(filename, "/\\\x00") &&
		!strings.Contains(filename, "..") &&
		strings.HasSuffix(filename, Ext) &&
		len(filename) > len(Ext)
}

func (s *Store) Load(filename string) (model.Entry, error) {
	path, err := s.ResolvePath(filename)
	if err != nil {
		return model.Entry{}, err
	}

	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		return model.Entry{}, errors.Wrapf(err, "store.read %s", filename)
	}

	var entry model.Entry
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return model.Entry{}, &DeserializationError{filename, err}
	}
	return entry, nil
}

// Exists reports whether a valid entry file called filename is present.
func (s *Store) Exists(filename string) bool {
	_, err := s.ResolvePath(filename)
	return err == nil
}

// Save writes entry under filename, replacing any previous content.
func (s *Store) Save(filename string, entry model.Entry) error {
	if !validName(filename) {
		return errors.Wrapf(ErrNotFound, "store.save %q", filename)
	}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return errors.Wrapf(err, "store.encode %s", filename)
	}
	if err := util.WriteFile(s.fs, filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "store.write %s", filename)
	}
	return nil
}

func (s *Store) Delete(filename string) error {
	path, err := s.ResolvePath(filename)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "store.remove %s", filename)
	}
	return nil
}
