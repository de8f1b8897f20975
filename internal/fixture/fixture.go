// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixture builds small EPUB and PDF documents in memory. Tests use
// it instead of binary files checked into the repository, and the Samples
// build target uses it to lay out a tree for trying the CLI by hand.
package fixture

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EPUBItem is one manifest entry of a generated EPUB.
type EPUBItem struct {
	ID        string
	Href      string
	MediaType string
	Content   []byte

	// Missing lists the item in the manifest without storing it in the archive.
	Missing bool
}

// EPUB describes a generated EPUB container.
type EPUB struct {
	Title   string
	Creator string

	// OPFPath is the package document location; defaults to OEBPS/content.opf.
	OPFPath string

	Items []EPUBItem

	// Spine lists item IDs in reading order. When nil, every HTML item is
	// listed in manifest order.
	Spine []string
}

// XHTML wraps body in a minimal XHTML content document.
func XHTML(title, body string) []byte {
	return []byte(`<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>` + title + `</title></head>
<body>
` + body + `
</body>
</html>`)
}

// Bytes renders the EPUB as a ZIP archive.
func (e EPUB) Bytes() ([]byte, error) {
	opfPath := e.OPFPath
	if opfPath == "" {
		opfPath = "OEBPS/content.opf"
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// mimetype must be first and stored uncompressed.
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte("application/epub+zip")); err != nil {
		return nil, err
	}

	container := `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="` + opfPath + `" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
	if err := writeZipFile(zw, "META-INF/container.xml", []byte(container)); err != nil {
		return nil, err
	}

	if err := writeZipFile(zw, opfPath, e.opf()); err != nil {
		return nil, err
	}

	dir := filepath.ToSlash(filepath.Dir(opfPath))
	for _, item := range e.Items {
		if item.Missing {
			continue
		}
		name := item.Href
		if dir != "." {
			name = dir + "/" + item.Href
		}
		if err := writeZipFile(zw, name, item.Content); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e EPUB) opf() []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:00000000-0000-0000-0000-000000000000</dc:identifier>
    <dc:language>en</dc:language>
`)
	if e.Title != "" {
		fmt.Fprintf(&b, "    <dc:title>%s</dc:title>\n", e.Title)
	}
	if e.Creator != "" {
		fmt.Fprintf(&b, "    <dc:creator>%s</dc:creator>\n", e.Creator)
	}
	b.WriteString("  </metadata>\n  <manifest>\n")
	for _, item := range e.Items {
		fmt.Fprintf(&b, "    <item id=%q href=%q media-type=%q/>\n", item.ID, item.Href, item.MediaType)
	}
	b.WriteString("  </manifest>\n  <spine>\n")
	spine := e.Spine
	if spine == nil {
		for _, item := range e.Items {
			if strings.Contains(item.MediaType, "html") {
				spine = append(spine, item.ID)
			}
		}
	}
	for _, id := range spine {
		fmt.Fprintf(&b, "    <itemref idref=%q/>\n", id)
	}
	b.WriteString("  </spine>\n</package>\n")
	return []byte(b.String())
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteEPUB renders e to path, creating parent directories.
func WriteEPUB(path string, e EPUB) error {
	data, err := e.Bytes()
	if err != nil {
		return fmt.Errorf("rendering EPUB %s: %w", path, err)
	}
	return WriteFile(path, data)
}

// PDF renders a PDF with one page per entry in pages. Each entry is the raw
// content stream of that page; an empty entry produces a page with no
// /Contents at all.
func PDF(pages ...string) []byte {
	return PDFWithPageCount(len(pages), pages...)
}

// PDFWithPageCount is like PDF but declares count pages in the page tree,
// which may differ from the number of page objects actually present.
func PDFWithPageCount(count int, pages ...string) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)
	obj := func(body string) int {
		offsets = append(offsets, buf.Len())
		n := len(offsets)
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
		return n
	}

	buf.WriteString("%PDF-1.4\n")

	// Object numbers are fixed up front: 1 catalog, 2 page tree, then a
	// page object and an optional content stream per page.
	pageNums := make([]int, len(pages))
	next := 3
	for i, content := range pages {
		pageNums[i] = next
		next++
		if content != "" {
			next++
		}
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pageNums))
	for i, n := range pageNums {
		kids[i] = fmt.Sprintf("%d 0 R", n)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), count))

	for i, content := range pages {
		if content == "" {
			obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
			continue
		}
		if strings.HasPrefix(content, "/Contents ") {
			// Raw /Contents value, used to produce malformed pages.
			obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " + content + " >>")
			obj("<< >>")
			continue
		}
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R >>", pageNums[i]+1))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// WritePDF renders a PDF with the given page contents to path.
func WritePDF(path string, pages ...string) error {
	return WriteFile(path, PDF(pages...))
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteSamples lays out a small mixed tree under dir: a two-page PDF, an
// EPUB in a nested directory, a plain text file that must be left alone,
// and a corrupt PDF.
func WriteSamples(dir string) error {
	if err := WritePDF(filepath.Join(dir, "papers", "hello.pdf"),
		"BT /F1 12 Tf 72 720 Td (Hello) Tj ET",
		"BT [(Second) -250 (page)] TJ ET",
	); err != nil {
		return err
	}

	book := EPUB{
		Title:   "Sample Book",
		Creator: "Sample Author",
		Items: []EPUBItem{
			{ID: "css", Href: "style.css", MediaType: "text/css", Content: []byte("p { margin: 0 }")},
			{ID: "ch1", Href: "ch1.xhtml", MediaType: "application/xhtml+xml",
				Content: XHTML("One", "<h1>Chapter One</h1>\n<p>It was a quiet morning.</p>")},
			{ID: "ch2", Href: "ch2.xhtml", MediaType: "application/xhtml+xml",
				Content: XHTML("Two", "<h1>Chapter Two</h1>\n<script>ignored()</script>\n<p>The end.</p>")},
		},
	}
	if err := WriteEPUB(filepath.Join(dir, "books", "sample.epub"), book); err != nil {
		return err
	}

	if err := WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a document\n")); err != nil {
		return err
	}
	return WriteFile(filepath.Join(dir, "papers", "corrupt.pdf"), []byte(strings.Repeat("garbage ", 40)))
}
