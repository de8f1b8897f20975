// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package epub reads the parts of an EPUB container needed for text
// extraction: the Dublin Core metadata and the manifest resources of the
// package document named in META-INF/container.xml.
package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	containerPath   = "META-INF/container.xml"
	packageMimeType = "application/oebps-package+xml"
)

var (
	// ErrNoContainer means the archive lacks META-INF/container.xml.
	ErrNoContainer = errors.New("epub: META-INF/container.xml not found")

	// ErrNoRootfile means container.xml names no usable package document.
	ErrNoRootfile = errors.New("epub: no package document in container")

	// ErrResourceNotFound means a manifest entry has no file in the archive.
	ErrResourceNotFound = errors.New("epub: resource not found in archive")
)

// Metadata holds the first title and creator the package declares. Missing
// elements are empty strings.
type Metadata struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Creator string `json:"creator,omitempty" yaml:"creator,omitempty"`
}

// Resource is one manifest entry.
type Resource struct {
	// ID is the manifest item id.
	ID string

	// Path is the archive path, resolved against the package document's
	// directory.
	Path string

	// MediaType is the declared MIME type.
	MediaType string
}

// Reader gives access to an opened EPUB container.
type Reader struct {
	files     map[string]*zip.File
	rootfile  string
	metadata  Metadata
	resources []Resource
}

// ReadCloser is a Reader backed by a file that must be closed.
type ReadCloser struct {
	Reader
	zr *zip.ReadCloser
}

// Open opens the EPUB at name and parses its package document.
func Open(name string) (*ReadCloser, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	rc := &ReadCloser{zr: zr}
	if err := rc.init(&zr.Reader); err != nil {
		zr.Close()
		return nil, err
	}
	return rc, nil
}

// Close releases the underlying file.
func (rc *ReadCloser) Close() error {
	return rc.zr.Close()
}

// NewReader parses an EPUB held in r, which has the given size in bytes.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	rd := &Reader{}
	if err := rd.init(zr); err != nil {
		return nil, err
	}
	return rd, nil
}

// Metadata returns the package metadata.
func (r *Reader) Metadata() Metadata {
	return r.metadata
}

// Rootfile returns the archive path of the package document.
func (r *Reader) Rootfile() string {
	return r.rootfile
}

// Resources returns the manifest entries in manifest order.
func (r *Reader) Resources() []Resource {
	return r.resources
}

// ReadResource returns the raw bytes of res.
func (r *Reader) ReadResource(res Resource) ([]byte, error) {
	f, ok := r.files[res.Path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, res.Path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", res.Path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", res.Path, err)
	}
	return data, nil
}

// container mirrors META-INF/container.xml.
type container struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// packageDoc mirrors the parts of the OPF package document we read.
type packageDoc struct {
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
	} `xml:"metadata"`
	Items []struct {
		ID        string `xml:"id,attr"`
		Href      string `xml:"href,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"manifest>item"`
}

func (r *Reader) init(zr *zip.Reader) error {
	r.files = make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	rootfile, err := r.findRootfile()
	if err != nil {
		return err
	}
	r.rootfile = rootfile

	var pkg packageDoc
	if err := r.decodeXML(rootfile, &pkg); err != nil {
		return err
	}

	r.metadata = Metadata{
		Title:   first(pkg.Metadata.Titles),
		Creator: first(pkg.Metadata.Creators),
	}

	base := path.Dir(rootfile)
	r.resources = make([]Resource, 0, len(pkg.Items))
	for _, item := range pkg.Items {
		r.resources = append(r.resources, Resource{
			ID:        item.ID,
			Path:      resolveHref(base, item.Href),
			MediaType: strings.TrimSpace(item.MediaType),
		})
	}
	return nil
}

// findRootfile returns the package document path, preferring an entry
// declared with the OPF media type.
func (r *Reader) findRootfile() (string, error) {
	if _, ok := r.files[containerPath]; !ok {
		return "", ErrNoContainer
	}

	var c container
	if err := r.decodeXML(containerPath, &c); err != nil {
		return "", err
	}

	fallback := ""
	for _, rf := range c.Rootfiles {
		if rf.FullPath == "" {
			continue
		}
		if rf.MediaType == packageMimeType {
			return rf.FullPath, nil
		}
		if fallback == "" {
			fallback = rf.FullPath
		}
	}
	if fallback == "" {
		return "", ErrNoRootfile
	}
	return fallback, nil
}

func (r *Reader) decodeXML(name string, v any) error {
	f, ok := r.files[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrResourceNotFound, name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// resolveHref turns a manifest href into an archive path.
func resolveHref(base, href string) string {
	if u, err := url.PathUnescape(href); err == nil {
		href = u
	}
	return path.Join(base, href)
}

func first(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
