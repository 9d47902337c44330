package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrClientNotFound = errors.New("client not found")
var ErrDocumentNotFound = errors.New("document not found")
var ErrForbidden = errors.New("access forbidden")
