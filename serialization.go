package blaze

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION: saving and loading an Index
// ═══════════════════════════════════════════════════════════════════════════════
// The core is an in-memory value; persistence is optional and lives entirely
// in this file, never called from Index/Query/Search. When a caller does want
// it, this is a self-contained binary codec in the same spirit as the rest of
// this package: a fixed header, then documents, then postings, all framed
// with encoding/binary and length-prefixed byte blocks, round-trippable
// without any external schema.
//
// BINARY FORMAT:
// --------------
// [Header]
//   - Magic:      uint32
//   - Version:    uint32
//   - NumDocs:    uint32
//   - NumTerms:   uint32
//
// [Documents] (NumDocs times, ascending by id)
//   - ID:          uint64
//   - ContentLen:  uint32
//   - Content:     ContentLen bytes
//
// [Postings] (NumTerms times, ascending by term)
//   - TermLen:   uint32
//   - Term:      TermLen bytes
//   - NumDocs:   uint32
//   - for each (ascending by doc id):
//   - DocID:          uint64
//   - NumPositions:   uint32
//   - for each position: Begin uint32, End uint32, TokenPos uint32
// ═══════════════════════════════════════════════════════════════════════════════

const (
	serializationMagic   uint32 = 0x626c617a // "blaz"
	serializationVersion uint32 = 1
)

// Errors surfaced by Decode. Encode has no failure mode beyond the ones an
// io.Writer itself can produce.
var (
	ErrUnknownFormatVersion = errors.New("blaze: unknown serialization format version")
	ErrTruncatedStream      = errors.New("blaze: truncated serialization stream")
	ErrCorruptPostings      = errors.New("blaze: corrupt postings data")
)

// Encode writes idx to w in this package's binary format. The written stream
// preserves idx's analyzer-independent state (documents and postings); the
// decoded Index always uses the default analyzer pair, since analyzers are
// not themselves serializable configuration.
func (idx *Index) Encode(w io.Writer) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	bw := bufio.NewWriter(w)

	if err := writeUint32(bw, serializationMagic); err != nil {
		return err
	}
	if err := writeUint32(bw, serializationVersion); err != nil {
		return err
	}
	if err := writeUint32(bw, uint32(idx.docs.Len())); err != nil {
		return err
	}
	if err := writeUint32(bw, uint32(idx.terms.Len())); err != nil {
		return err
	}

	var encErr error
	idx.docs.Entries(func(id uint64, doc *Document) {
		if encErr != nil {
			return
		}
		encErr = encodeDocument(bw, id, *doc)
	})
	if encErr != nil {
		return encErr
	}

	idx.terms.Entries(func(term string, pm *PostingsMap) {
		if encErr != nil {
			return
		}
		encErr = encodePostings(bw, term, pm)
	})
	if encErr != nil {
		return encErr
	}

	return bw.Flush()
}

func encodeDocument(w *bufio.Writer, id uint64, doc Document) error {
	if err := writeUint64(w, id); err != nil {
		return err
	}
	content := []byte(doc.Content)
	if err := writeUint32(w, uint32(len(content))); err != nil {
		return err
	}
	_, err := w.Write(content)
	return err
}

func encodePostings(w *bufio.Writer, term string, pm *PostingsMap) error {
	termBytes := []byte(term)
	if err := writeUint32(w, uint32(len(termBytes))); err != nil {
		return err
	}
	if _, err := w.Write(termBytes); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(pm.Len())); err != nil {
		return err
	}
	var err error
	pm.Entries(func(docID uint64, positions PostingsList) {
		if err != nil {
			return
		}
		if err = writeUint64(w, docID); err != nil {
			return
		}
		if err = writeUint32(w, uint32(len(positions))); err != nil {
			return
		}
		for _, p := range positions {
			if err = writeUint32(w, uint32(p.Begin())); err != nil {
				return
			}
			if err = writeUint32(w, uint32(p.End())); err != nil {
				return
			}
			if err = writeUint32(w, uint32(p.TokenPos)); err != nil {
				return
			}
		}
	})
	return err
}

// Decode reads an Index previously written by Encode. The returned Index
// uses the default analyzer pair (whitespace queries, ngram documents),
// regardless of what analyzers the encoding Index used.
func Decode(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	magic, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	if magic != serializationMagic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrUnknownFormatVersion, magic)
	}
	version, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	if version != serializationVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormatVersion, version)
	}
	numDocs, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	numTerms, err := readUint32(br)
	if err != nil {
		return nil, err
	}

	idx := New()
	for i := uint32(0); i < numDocs; i++ {
		id, content, err := decodeDocument(br)
		if err != nil {
			return nil, err
		}
		doc := NewDocument(id, content)
		idx.docs.Set(id, &doc)
	}
	for i := uint32(0); i < numTerms; i++ {
		term, pm, err := decodePostings(br)
		if err != nil {
			return nil, err
		}
		idx.terms.Set(term, pm)
	}
	return idx, nil
}

func decodeDocument(r *bufio.Reader) (uint64, string, error) {
	id, err := readUint64(r)
	if err != nil {
		return 0, "", err
	}
	n, err := readUint32(r)
	if err != nil {
		return 0, "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return id, string(buf), nil
}

func decodePostings(r *bufio.Reader) (string, *PostingsMap, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	term := string(buf)

	numDocs, err := readUint32(r)
	if err != nil {
		return "", nil, err
	}
	pm := newPostingsMap()
	for i := uint32(0); i < numDocs; i++ {
		docID, err := readUint64(r)
		if err != nil {
			return "", nil, err
		}
		numPositions, err := readUint32(r)
		if err != nil {
			return "", nil, err
		}
		positions := make(PostingsList, numPositions)
		for j := uint32(0); j < numPositions; j++ {
			begin, err := readUint32(r)
			if err != nil {
				return "", nil, err
			}
			end, err := readUint32(r)
			if err != nil {
				return "", nil, err
			}
			tokenPos, err := readUint32(r)
			if err != nil {
				return "", nil, err
			}
			if end < begin {
				return "", nil, ErrCorruptPostings
			}
			positions[j] = NewPosition(int(begin), int(end), int(tokenPos))
		}
		pm.Set(docID, positions)
	}
	return term, pm, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
