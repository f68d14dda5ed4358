package store

// FileOption configures file creation options.
type FileOption func(*fileOptions)

type fileOptions struct {
	compression int
	overwrite   bool
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		compression: 0,
		overwrite:   true,
	}
}

// WithCompression sets the zstd compression level for the file body
// (1-4 mapping onto zstd's fastest..best presets, 0 = uncompressed).
func WithCompression(level int) FileOption {
	return func(o *fileOptions) {
		if level >= 0 && level <= 4 {
			o.compression = level
		}
	}
}

// WithOverwrite controls whether Create may replace an existing file.
// The default allows overwrite; with overwrite disabled Create fails
// with ErrFileExists when the target is present.
func WithOverwrite(allow bool) FileOption {
	return func(o *fileOptions) {
		o.overwrite = allow
	}
}
