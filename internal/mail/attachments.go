package mail

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
)

// ResolveAttachments resolves each attachment in request order. Local files
// are read fully and base64-encoded; remote URLs pass through untouched and
// are fetched by the provider. The output order matches the input order.
func ResolveAttachments(attachments []Attachment) ([]ResolvedAttachment, error) {
	if len(attachments) == 0 {
		return nil, nil
	}

	resolved := make([]ResolvedAttachment, 0, len(attachments))
	for _, att := range attachments {
		if att.LocalPath != "" {
			content, err := resolveLocal(att.LocalPath)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, ResolvedAttachment{
				Filename: att.Filename,
				Content:  content,
			})
			continue
		}
		resolved = append(resolved, ResolvedAttachment{
			Filename: att.Filename,
			Path:     att.RemoteURL,
		})
	}

	return resolved, nil
}

// resolveLocal reads a local file and returns its base64-encoded content.
// There is no size limit; the file is read in full.
func resolveLocal(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewError(KindAttachmentNotFound, "Attachment file not found: %s", path)
		}
		return "", NewError(KindAttachmentRead, "Failed to stat attachment file %s: %v", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewError(KindAttachmentRead, "Failed to read attachment file %s: %v", path, err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
