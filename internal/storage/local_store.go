package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fleetops/internal/utils"
)

// DocumentsPrefix is the folder vehicle document attachments are kept under.
const DocumentsPrefix = "vehicle_documents"

// LocalStore writes blobs below Root and hands back a relative reference path.
type LocalStore struct {
	Root string
}

// Save copies r into a new uniquely named file under prefix.
// The returned reference uses forward slashes regardless of OS.
func (s LocalStore) Save(prefix, originalName string, r io.Reader) (string, error) {
	root := strings.TrimSpace(s.Root)
	if root == "" {
		root = "uploads"
	}
	prefix = utils.SafeFilenamePart(prefix)

	ext := strings.ToLower(filepath.Ext(originalName))
	base := utils.SafeFilenamePart(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	name := uuid.NewString() + "_" + base
	if ext != "" {
		name += "." + utils.SafeFilenamePart(strings.TrimPrefix(ext, "."))
	}

	dir := filepath.Join(root, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path.Join(prefix, name), nil
}

// Remove deletes a previously saved reference. Missing files are ignored.
func (s LocalStore) Remove(ref string) error {
	root := strings.TrimSpace(s.Root)
	if root == "" {
		root = "uploads"
	}
	clean := filepath.Clean(filepath.FromSlash(ref))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid reference %q", ref)
	}
	err := os.Remove(filepath.Join(root, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
