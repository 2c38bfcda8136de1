package leantpl

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FilesystemLoader serves templates as files under a root directory.
// Template names are slash-separated paths relative to the root; names
// escaping the root are rejected.
type FilesystemLoader struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemLoaderDriver is the driver for creating FilesystemLoader
// instances. The connection string is the root directory path.
type FilesystemLoaderDriver struct{}

func init() {
	RegisterLoaderDriver(LoaderDriverNameFilesystem, &FilesystemLoaderDriver{})
}

// Open creates a new FilesystemLoader rooted at the connection string.
func (d *FilesystemLoaderDriver) Open(connectionString string) (Loader, error) {
	return NewFilesystemLoader(connectionString)
}

// NewFilesystemLoader creates a filesystem-backed loader. The root
// directory must already exist.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, &LoaderError{Message: ErrMsgInvalidLoaderRoot}
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &LoaderError{
			Message: ErrMsgInvalidLoaderRoot,
			Name:    root,
			Cause:   err,
		}
	}
	return &FilesystemLoader{root: root}, nil
}

// Load reads a template file relative to the root.
func (l *FilesystemLoader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateTemplateName(name); err != nil {
		return "", err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return "", NewLoaderClosedError()
	}

	data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewLoaderTemplateNotFoundError(name)
		}
		return "", &LoaderError{
			Message: ErrMsgTemplateNotFound,
			Name:    name,
			Cause:   err,
		}
	}
	return string(data), nil
}

// Root returns the loader's root directory.
func (l *FilesystemLoader) Root() string {
	return l.root
}

// Close marks the loader closed.
func (l *FilesystemLoader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	return nil
}

// validateTemplateName rejects names that could escape the loader root.
func validateTemplateName(name string) error {
	if name == "" {
		return NewInvalidTemplateNameError(name)
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return NewInvalidTemplateNameError(name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return NewInvalidTemplateNameError(name)
		}
	}
	return nil
}
