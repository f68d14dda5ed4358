package store

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/robert-malhotra/go-datamodel/internal/codec"
)

// NodeKind identifies the kind of a node in the container tree. Only
// KindGroup and KindDataset are ever written by this package; the value is
// carried verbatim from the file so that readers can detect nodes written
// by a newer format revision.
type NodeKind uint8

const (
	// KindGroup is a node that nests named child nodes.
	KindGroup NodeKind = 1
	// KindDataset is a node that holds a typed value payload.
	KindDataset NodeKind = 2
)

// String returns a readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// node is the on-disk (and in-memory) representation of a tree node.
// Integer keys keep the CBOR encoding compact.
type node struct {
	Kind     uint8            `cbor:"1,keyasint"`
	Attrs    map[string]any   `cbor:"2,keyasint,omitempty"`
	Order    []string         `cbor:"3,keyasint,omitempty"`
	Children map[string]*node `cbor:"4,keyasint,omitempty"`
	Data     any              `cbor:"5,keyasint,omitempty"`
}

func newGroupNode() *node {
	return &node{Kind: uint8(KindGroup)}
}

// File format constants.
var magic = [4]byte{'S', 'D', 'C', '1'}

const (
	formatVersion = 1
	headerSize    = 6 // magic + version + flags

	flagZstd = 0x01
)

// File represents an open container store file. Files opened with Open are
// read-only; files created with Create are writable and are serialized to
// disk on Flush and Close.
type File struct {
	path     string
	file     *os.File
	root     *node
	writable bool
	closed   bool
	options  *fileOptions
}

// Open opens an existing container store file for reading.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	root, err := decodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{
		path: path,
		root: root,
	}, nil
}

// Create creates a new container store file at the given path. The file on
// disk is written when the File is flushed or closed.
func Create(path string, opts ...FileOption) (*File, error) {
	options := defaultFileOptions()
	for _, opt := range opts {
		opt(options)
	}

	if !options.overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrFileExists)
		}
	}

	osFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	return &File{
		path:     path,
		file:     osFile,
		root:     newGroupNode(),
		writable: true,
		options:  options,
	}, nil
}

// Close flushes pending changes (for writable files) and releases the file.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if !f.writable {
		return nil
	}
	if err := f.flush(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}

// Flush serializes the current tree to disk. It is a no-op for read-only
// files.
func (f *File) Flush() error {
	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return nil
	}
	return f.flush()
}

func (f *File) flush() error {
	data, err := encodeFile(f.root, f.options.compression)
	if err != nil {
		return fmt.Errorf("encoding tree: %w", err)
	}
	if err := f.file.Truncate(0); err != nil {
		return fmt.Errorf("truncating file: %w", err)
	}
	if _, err := f.file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return f.file.Sync()
}

// Root returns the root group of the file.
func (f *File) Root() *Group {
	return &Group{file: f, path: "/", n: f.root}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// OpenGroup opens a group by path relative to the root.
func (f *File) OpenGroup(path string) (*Group, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.Root().OpenGroup(path)
}

// OpenDataset opens a dataset by path relative to the root.
func (f *File) OpenDataset(path string) (*Dataset, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.Root().OpenDataset(path)
}

// encodeFile renders the header and CBOR body for the tree.
func encodeFile(root *node, compression int) ([]byte, error) {
	body, err := codec.Marshal(root)
	if err != nil {
		return nil, err
	}

	var flags byte
	if compression > 0 {
		flags |= flagZstd
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf,
			zstd.WithEncoderLevel(zstd.EncoderLevel(compression)))
		if err != nil {
			return nil, fmt.Errorf("creating compressor: %w", err)
		}
		if _, err := enc.Write(body); err != nil {
			enc.Close()
			return nil, fmt.Errorf("compressing body: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("compressing body: %w", err)
		}
		body = buf.Bytes()
	}

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, magic[:]...)
	out = append(out, formatVersion, flags)
	return append(out, body...), nil
}

// decodeFile parses the header and CBOR body into a node tree.
func decodeFile(data []byte) (*node, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrNotStoreFile
	}
	version := data[4]
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", version)
	}
	flags := data[5]
	body := data[headerSize:]

	if flags&flagZstd != 0 {
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating decompressor: %w", err)
		}
		defer dec.Close()
		body, err = io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("decompressing body: %w", err)
		}
	}

	var root node
	if err := codec.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	if NodeKind(root.Kind) != KindGroup {
		return nil, fmt.Errorf("root node: %w", ErrNotGroup)
	}
	return &root, nil
}
