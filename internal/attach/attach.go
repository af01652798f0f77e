// Package attach turns local media files into chat attachments.
package attach

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vkazakov/repetitor/internal/chat"
	"github.com/vkazakov/repetitor/internal/errors"
)

// MaxSize caps attachment files at 20 MB, matching the inline data limit of
// the Gemini API.
const MaxSize = 20 * 1024 * 1024

// FromFile reads a media file and encodes it as an attachment. Only image,
// video and audio files are accepted.
func FromFile(path string) (chat.Attachment, error) {
	const op = errors.Op("attach.FromFile")

	info, err := os.Stat(path)
	if err != nil {
		return chat.Attachment{}, errors.E(op, errors.KindNotFound, err)
	}
	if info.Size() > MaxSize {
		return chat.Attachment{}, errors.E(op, errors.KindInvalid,
			fmt.Sprintf("file %s is %d bytes, limit is %d", filepath.Base(path), info.Size(), MaxSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chat.Attachment{}, errors.E(op, errors.KindIO, err)
	}

	mimeType := detectMIME(path, data)
	kind, ok := kindFor(mimeType)
	if !ok {
		return chat.Attachment{}, errors.AttachmentUnsupported(mimeType)
	}

	return chat.Attachment{
		Kind:     kind,
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
		Name:     filepath.Base(path),
	}, nil
}

// detectMIME prefers the file extension and falls back to content sniffing.
func detectMIME(path string, data []byte) string {
	if ext := filepath.Ext(path); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			// Strip optional parameters like "; charset=utf-8"
			if i := strings.Index(byExt, ";"); i >= 0 {
				byExt = byExt[:i]
			}
			return byExt
		}
	}
	return http.DetectContentType(data)
}

func kindFor(mimeType string) (chat.AttachmentKind, bool) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return chat.AttachmentImage, true
	case strings.HasPrefix(mimeType, "video/"):
		return chat.AttachmentVideo, true
	case strings.HasPrefix(mimeType, "audio/"):
		return chat.AttachmentAudio, true
	default:
		return "", false
	}
}
