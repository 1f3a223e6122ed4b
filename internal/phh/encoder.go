package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem/internal/fileutil"
)

// Encode writes one hand as a .phh document.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as a .phhs document, one numbered table per
// hand starting at [1].
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
	}
	return nil
}

// Decode reads a single .phh document.
func Decode(data []byte) (*HandHistory, error) {
	var h HandHistory
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&h); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	return &h, nil
}

// DecodeSession reads a .phhs document in section order.
func DecodeSession(data []byte) ([]*HandHistory, error) {
	var sections map[string]HandHistory
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	keys := make([]int, 0, len(sections))
	for k := range sections {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("phh: section %q is not a hand number", k)
		}
		keys = append(keys, n)
	}
	sort.Ints(keys)
	out := make([]*HandHistory, len(keys))
	for i, k := range keys {
		h := sections[strconv.Itoa(k)]
		out[i] = &h
	}
	return out, nil
}

// WriteSessionFile atomically replaces filename with a .phhs document.
func WriteSessionFile(filename string, hands []*HandHistory) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return EncodeSession(w, hands)
	})
}

// ReadSessionFile reads a .phhs file.
func ReadSessionFile(filename string) ([]*HandHistory, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return DecodeSession(data)
}
