// Package writer serializes a monster catalog to the monsters XML document.
package writer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/harrison/monsterxml/internal/filelock"
	"github.com/harrison/monsterxml/internal/models"
	"github.com/harrison/monsterxml/internal/projection"
)

// Declaration is the first line of every generated document
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Element names of the generated document
const (
	ElemMonsters = "monsters"
	ElemMonster  = "monster"
	ElemSkipped  = "skipped_files"
	ElemFile     = "file"
)

// Indent is the per-level indentation of the generated document
const Indent = "  "

// ErrInvalidXMLChar is returned when a name, attribute value or skipped path
// holds a character XML 1.0 cannot represent, such as a control character or
// a byte sequence that is not UTF-8. Nothing is written in that case.
var ErrInvalidXMLChar = errors.New("string is not XML compatible")

// checkXMLText reports an error if s cannot appear in an XML 1.0 document
func checkXMLText(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || !isXMLChar(r) {
			return fmt.Errorf("%w: %q", ErrInvalidXMLChar, s)
		}
		i += size
	}
	return nil
}

// isXMLChar matches the Char production of XML 1.0
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// Options controls how WriteFile stores the document
type Options struct {
	Lock   bool // Hold <path>.lock while writing
	Atomic bool // Write a temp file and rename it into place
}

// Encode writes the XML declaration and the monsters tree for catalog to w.
// The skipped_files element is only written when there are skipped files.
func Encode(w io.Writer, catalog *models.Catalog) error {
	if _, err := io.WriteString(w, Declaration); err != nil {
		return fmt.Errorf("write declaration: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", Indent)

	root := xml.StartElement{Name: xml.Name{Local: ElemMonsters}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("encode %s: %w", ElemMonsters, err)
	}

	for _, record := range catalog.Monsters {
		start := xml.StartElement{Name: xml.Name{Local: ElemMonster}}
		for _, attr := range projection.Attributes(record) {
			if err := checkXMLText(attr.Value); err != nil {
				return fmt.Errorf("encode monster %s: %w", attr.Name, err)
			}
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: attr.Name}, Value: attr.Value})
		}
		if err := enc.EncodeToken(start); err != nil {
			return fmt.Errorf("encode monster %q: %w", record.Name, err)
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return fmt.Errorf("encode monster %q: %w", record.Name, err)
		}
	}

	if len(catalog.Skipped) > 0 {
		skipped := xml.StartElement{Name: xml.Name{Local: ElemSkipped}}
		if err := enc.EncodeToken(skipped); err != nil {
			return fmt.Errorf("encode %s: %w", ElemSkipped, err)
		}
		for _, s := range catalog.Skipped {
			if err := checkXMLText(s.Path); err != nil {
				return fmt.Errorf("encode skipped file: %w", err)
			}
			file := xml.StartElement{Name: xml.Name{Local: ElemFile}}
			if err := enc.EncodeElement(s.Path, file); err != nil {
				return fmt.Errorf("encode skipped file %s: %w", s.Path, err)
			}
		}
		if err := enc.EncodeToken(skipped.End()); err != nil {
			return fmt.Errorf("encode %s: %w", ElemSkipped, err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("encode %s: %w", ElemMonsters, err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush xml: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the encoded document for catalog
func Marshal(catalog *models.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, catalog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes catalog and writes it to path, replacing any existing content.
func WriteFile(path string, catalog *models.Catalog, opts Options) error {
	data, err := Marshal(catalog)
	if err != nil {
		return err
	}
	if err := filelock.Write(path, data, filelock.WriteOptions{Lock: opts.Lock, Atomic: opts.Atomic}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
