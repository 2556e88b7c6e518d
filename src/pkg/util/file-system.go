package util

import (
	"fmt"
	"io"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
EnsureDirectory creates the target directory (and parents) if needed.

It uses os.MkdirAll and returns a *xerr.Error if creation fails.
*/
func EnsureDirectory(dirPath string) (e *xerr.Error) {
	err := os.MkdirAll(dirPath, 0o755)
	if err != nil {
		e = xerr.NewError(err, "create directory", dirPath)
		return e
	}

	tl.Log(tl.Info1, palette.Blue, "Ensured directory '%s'", dirPath)

	return e
}

/*
CopyFile copies sourcePath to destinationPath, overwriting the destination.

The copy is flushed to disk before returning so a reader opening the
destination right after sees the complete file.
*/
func CopyFile(sourcePath string, destinationPath string) (e *xerr.Error) {
	sourceFile, openErr := os.Open(sourcePath)
	if openErr != nil {
		e = xerr.NewError(openErr, "open source file for copy", sourcePath)
		return e
	}
	defer func() {
		_ = sourceFile.Close()
	}()

	destinationFile, createErr := os.Create(destinationPath)
	if createErr != nil {
		e = xerr.NewError(createErr, "create destination file", destinationPath)
		return e
	}
	defer func() {
		_ = destinationFile.Close()
	}()

	_, copyErr := io.Copy(destinationFile, sourceFile)
	if copyErr != nil {
		e = xerr.NewError(copyErr, "copy file", fmt.Sprintf("from '%s' to '%s'", sourcePath, destinationPath))
		return e
	}

	syncErr := destinationFile.Sync()
	if syncErr != nil {
		e = xerr.NewError(syncErr, "sync copied file", destinationPath)
		return e
	}

	return e
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return false
	}
	return info.Mode().IsRegular()
}
