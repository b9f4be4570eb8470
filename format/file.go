package format

import (
	"bytes"
	"fmt"
	"os"

	"github.com/c360studio/docloc/catalog"
)

// DecodeFile parses the catalog at path, dispatching to the codec
// registered for its extension.
func DecodeFile(path string) (*catalog.File, error) {
	codec, err := DefaultRegistry.ByPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	parsed, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// EncodeFile serializes f to path, dispatching to the codec
// registered for its extension.
func EncodeFile(path string, f *catalog.File) error {
	codec, err := DefaultRegistry.ByPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := codec.Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
