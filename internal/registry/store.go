// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrParsing reports failures that occur while decoding a component file.
	ErrParsing = errors.New("error parsing")
	// ErrInstanceExists is returned when creating an instance with a name already in use.
	ErrInstanceExists = errors.New("instance already exists")
	// ErrInstanceNotFound is returned when looking up an unknown instance.
	ErrInstanceNotFound = errors.New("instance not found")
)

// Instance is a named component with its type and configured properties.
type Instance struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// SetProperty sets the property name to value.
func (i *Instance) SetProperty(name string, value any) {
	if i.Properties == nil {
		i.Properties = make(map[string]any)
	}
	i.Properties[name] = value
}

// Property returns the value of the property name.
func (i *Instance) Property(name string) (any, bool) {
	value, ok := i.Properties[name]
	return value, ok
}

const filePermissions fs.FileMode = 0o644

// document is the on disk layout of a component file.
type document struct {
	Instances []*Instance `yaml:"instances"`
}

// Store holds the instances read from a component file, in file order.
type Store struct {
	path      string
	instances []*Instance
}

// Open reads the component file at path. A missing file returns an empty store that
// will create the file on Rewrite.
func Open(path string) (*Store, error) {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return store, nil
	case err != nil:
		return nil, err
	}

	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	seen := make(map[string]struct{}, len(doc.Instances))
	for _, instance := range doc.Instances {
		if instance == nil {
			continue
		}
		if instance.Name == "" {
			return nil, fmt.Errorf("%w %q: instance without name", ErrParsing, path)
		}
		if _, ok := seen[instance.Name]; ok {
			return nil, fmt.Errorf("%w %q: duplicated instance %q", ErrParsing, path, instance.Name)
		}
		seen[instance.Name] = struct{}{}
		store.instances = append(store.instances, instance)
	}

	return store, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// InstanceExists reports whether an instance called name is registered.
func (s *Store) InstanceExists(name string) bool {
	_, ok := s.Instance(name)
	return ok
}

// Instance returns the instance called name.
func (s *Store) Instance(name string) (*Instance, bool) {
	for _, instance := range s.instances {
		if instance.Name == name {
			return instance, true
		}
	}

	return nil, false
}

// Instances returns the registered instances in file order.
func (s *Store) Instances() []*Instance {
	instances := make([]*Instance, len(s.instances))
	copy(instances, s.instances)
	return instances
}

// CreateInstance registers a new instance of typeName called name.
func (s *Store) CreateInstance(name, typeName string) (*Instance, error) {
	if s.InstanceExists(name) {
		return nil, fmt.Errorf("%w: %s", ErrInstanceExists, name)
	}

	instance := &Instance{Name: name, Type: typeName}
	s.instances = append(s.instances, instance)
	return instance, nil
}

// Rewrite saves the store to its file, replacing the previous content.
// The file is written to a temporary file first and then renamed over the old one.
func (s *Store) Rewrite() error {
	buffer := new(bytes.Buffer)
	encoder := yaml.NewEncoder(buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(document{Instances: s.instances}); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buffer.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(s.fileMode()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

// fileMode returns the permissions of the existing file, or filePermissions when it
// does not exist yet.
func (s *Store) fileMode() os.FileMode {
	info, err := os.Stat(s.path)
	if err != nil {
		return filePermissions
	}

	return info.Mode().Perm()
}
