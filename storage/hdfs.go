package storage

import (
	"context"
	"io"
	"log/slog"
	"path"

	"github.com/colinmarc/hdfs/v2"
)

// HDFSStore keeps archives in a directory on HDFS so every API replica
// serves the same files.
type HDFSStore struct {
	client *hdfs.Client
	dir    string
}

func NewHDFSStore(namenode, user, dir string) (*HDFSStore, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: []string{namenode},
		User:      user,
	})
	if err != nil {
		return nil, err
	}

	if err := client.MkdirAll(dir, 0o755); err != nil {
		client.Close()
		return nil, err
	}

	slog.Info("hdfs archive store ready", slog.String("namenode", namenode), slog.String("dir", dir))
	return &HDFSStore{client: client, dir: dir}, nil
}

func (s *HDFSStore) Save(ctx context.Context, name string, r io.Reader) error {
	if err := validateName(name); err != nil {
		return err
	}

	w, err := s.client.Create(path.Join(s.dir, name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		s.client.Remove(path.Join(s.dir, name))
		return err
	}
	return w.Close()
}

func (s *HDFSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.client.Open(path.Join(s.dir, name))
}

func (s *HDFSStore) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return s.client.Remove(path.Join(s.dir, name))
}

func (s *HDFSStore) Close() error {
	return s.client.Close()
}
