package mail

// SendEmailRequest is the typed form of the send_email tool arguments.
type SendEmailRequest struct {
	// To is the recipient email address.
	To string

	// Subject is the email subject line.
	Subject string

	// Content is the plain-text body.
	Content string

	// From is the sender address. Optional; the configured default sender
	// is used when empty.
	From string

	// ReplyTo is the list of reply-to addresses. Optional; the configured
	// default list is used when empty.
	ReplyTo []string

	// ScheduledAt is a natural-language schedule expression (e.g. "in one
	// hour", "tomorrow at 9am"). It is passed to the provider verbatim and
	// never interpreted locally.
	ScheduledAt string

	// Attachments are the attachment descriptors, in request order.
	Attachments []Attachment
}

// Attachment describes a single attachment source. Exactly one of LocalPath
// and RemoteURL is set.
type Attachment struct {
	// Filename is the name the attachment is delivered under.
	Filename string

	// LocalPath is an absolute path on the local filesystem.
	LocalPath string

	// RemoteURL is a URL the provider fetches the content from.
	RemoteURL string
}

// ResolvedAttachment is an attachment ready for the provider: either inline
// base64 content (local source) or a pass-through URL (remote source).
// Exactly one of Content and Path is populated, mirroring the source
// Attachment's exclusivity.
type ResolvedAttachment struct {
	Filename string

	// Content is the base64-encoded file content for local attachments.
	Content string

	// Path is the remote URL for provider-fetched attachments.
	Path string
}

// ParseSendEmailArgs narrows an untyped argument map into a SendEmailRequest.
// Any structural failure yields a single uniform validation error; there is
// no field-level error reporting.
func ParseSendEmailArgs(args map[string]interface{}) (*SendEmailRequest, error) {
	if args == nil {
		return nil, validationError()
	}

	to, ok := args["to"].(string)
	if !ok {
		return nil, validationError()
	}
	subject, ok := args["subject"].(string)
	if !ok {
		return nil, validationError()
	}
	content, ok := args["content"].(string)
	if !ok {
		return nil, validationError()
	}

	req := &SendEmailRequest{
		To:      to,
		Subject: subject,
		Content: content,
	}

	if v, exists := args["from"]; exists {
		from, ok := v.(string)
		if !ok {
			return nil, validationError()
		}
		req.From = from
	}

	if v, exists := args["scheduledAt"]; exists {
		scheduledAt, ok := v.(string)
		if !ok {
			return nil, validationError()
		}
		req.ScheduledAt = scheduledAt
	}

	if v, exists := args["replyTo"]; exists {
		list, ok := v.([]interface{})
		if !ok {
			return nil, validationError()
		}
		replyTo := make([]string, 0, len(list))
		for _, elem := range list {
			addr, ok := elem.(string)
			if !ok {
				return nil, validationError()
			}
			replyTo = append(replyTo, addr)
		}
		req.ReplyTo = replyTo
	}

	if v, exists := args["attachments"]; exists {
		list, ok := v.([]interface{})
		if !ok {
			return nil, validationError()
		}
		attachments := make([]Attachment, 0, len(list))
		for _, elem := range list {
			att, ok := parseAttachment(elem)
			if !ok {
				return nil, validationError()
			}
			attachments = append(attachments, att)
		}
		req.Attachments = attachments
	}

	return req, nil
}

// parseAttachment validates a single attachment descriptor: a non-null object
// with a string filename and exactly one of localPath/remoteUrl present as a
// string. Both present or both absent is invalid.
func parseAttachment(v interface{}) (Attachment, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return Attachment{}, false
	}

	filename, ok := m["filename"].(string)
	if !ok {
		return Attachment{}, false
	}

	localPath, hasLocal := m["localPath"].(string)
	remoteURL, hasRemote := m["remoteUrl"].(string)
	if hasLocal == hasRemote {
		return Attachment{}, false
	}

	return Attachment{
		Filename:  filename,
		LocalPath: localPath,
		RemoteURL: remoteURL,
	}, true
}

func validationError() error {
	return &Error{
		Kind: KindValidation,
		Err:  errInvalidArguments,
	}
}
