// resources.go implements the MCP resource handler for file access.
//
// MCP resources let LLM clients load a file as context without a tool
// call. Loading a file this way counts as a full read, so the file can be
// edited afterwards just as after llmedit_read.
//
// Design: Resource URIs follow the pattern llmedit://files/{path}. The path
// is percent-decoded; an absolute path keeps its leading slash, so
// llmedit://files//etc/hosts names /etc/hosts.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jpl-au/llmedit/internal/log"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

const filesURI = "llmedit://files/"

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing file path in a resource URI.
	ErrEmptyPath = errors.New("empty file path")
)

// readFileResource reads a file and returns it as resource contents.
func (h *handlers) readFileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	p, err := parseFileURI(uri)
	if err != nil {
		return nil, err
	}

	res, err := h.Service().Read(ctx, p, service.ReadOptions{})

	log.Event("mcp:resource", "read").Author("mcp").Path(p).Resolved(res.Path).Write(err)

	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     res.Content,
		},
	}, nil
}

// parseFileURI extracts the file path from a file URI.
func parseFileURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, filesURI) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, filesURI)
	if rest == "" {
		return "", ErrEmptyPath
	}
	p, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	return p, nil
}
