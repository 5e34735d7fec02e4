package service

import (
	"net/url"
	"strings"

	apperrors "github.com/allisson/wopihost/internal/errors"
	wopiDomain "github.com/allisson/wopihost/internal/wopi/domain"
)

// URLBuilder builds the URLs handed to the host front end: the WOPISrc of a document and
// the editor launch URL that embeds it.
type URLBuilder struct {
	hostURL   *url.URL
	editorURL *url.URL
}

// NewURLBuilder validates both base URLs. hostURL is where the editor reaches the /wopi
// endpoints; editorURL is the editor's launch page.
func NewURLBuilder(hostURL, editorURL string) (*URLBuilder, error) {
	host, err := parseAbsoluteURL(hostURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid WOPI host URL")
	}
	editor, err := parseAbsoluteURL(editorURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid WOPI editor URL")
	}
	return &URLBuilder{hostURL: host, editorURL: editor}, nil
}

// WOPISrc returns the CheckFileInfo URL of the document.
func (b *URLBuilder) WOPISrc(documentID string) string {
	u := *b.hostURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/wopi/files/" + url.PathEscape(documentID)
	return u.String()
}

// EditorURL returns the editor launch URL for the document and action.
func (b *URLBuilder) EditorURL(documentID string, action wopiDomain.Action) string {
	u := *b.editorURL
	query := u.Query()
	query.Set("WOPISrc", b.WOPISrc(documentID))
	if action == wopiDomain.ViewAction {
		query.Set("permission", "readonly")
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// ServiceURL returns the editor service URL, without path or query.
func (b *URLBuilder) ServiceURL() string {
	u := url.URL{Scheme: b.editorURL.Scheme, Host: b.editorURL.Host}
	return u.String()
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "url %q must be absolute", raw)
	}
	return u, nil
}
