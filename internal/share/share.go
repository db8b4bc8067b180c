// Package share copies the result link for the user.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
)

// CopiedMessage is shown after a successful share.
const CopiedMessage = "Link copied to clipboard!"

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard is not available on this system")

// Sharer publishes the link of the result screen.
type Sharer interface {
	Share(link string) error
}

// ClipboardSharer writes the link to the system clipboard.
type ClipboardSharer struct {
	write       func(string) error
	unsupported bool
}

func NewClipboardSharer() *ClipboardSharer {
	return &ClipboardSharer{
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

func (s *ClipboardSharer) Share(link string) error {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid share link %q", link)
	}
	if s.unsupported {
		return ErrUnsupported
	}
	if err := s.write(link); err != nil {
		return fmt.Errorf("copying link: %w", err)
	}
	return nil
}
