package finalize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// exists reports whether path exists. Errors other than "not exist" are
// returned so permission problems are not mistaken for absence.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// copyFile copies src to dst, replacing dst. The destination keeps the
// source's permission bits and is written through a temporary file so a
// failed copy never leaves a truncated destination behind.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", dst, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting mode on %s: %w", dst, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("moving copy into %s: %w", dst, err)
	}

	return nil
}
