package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal GIF header, enough for content sniffing.
func gifPayload() []byte {
	return append([]byte("GIF89a"), make([]byte, 16)...)
}

func TestUploadStoresImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalStorageService(dir, "/uploads/")

	payload := gifPayload()
	url, err := svc.Upload("pompa.gif", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".gif"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestUploadExtensionFallback(t *testing.T) {
	svc := NewLocalStorageService(t.TempDir(), "/uploads")

	payload := gifPayload()
	url, err := svc.Upload("noext", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(url, ".gif"))
}

func TestUploadRejectsDeclaredOversize(t *testing.T) {
	svc := NewLocalStorageService(t.TempDir(), "/uploads")

	_, err := svc.Upload("big.gif", bytes.NewReader(gifPayload()), MaxUploadSize+1)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadRejectsActualOversize(t *testing.T) {
	svc := NewLocalStorageService(t.TempDir(), "/uploads")

	// Declared size lies; the byte count is what matters.
	payload := append(gifPayload(), make([]byte, MaxUploadSize)...)
	_, err := svc.Upload("big.gif", bytes.NewReader(payload), 100)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := NewLocalStorageService(t.TempDir(), "/uploads")

	payload := []byte("<!DOCTYPE html><html></html>")
	_, err := svc.Upload("page.jpg", bytes.NewReader(payload), int64(len(payload)))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestDeleteRemovesFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalStorageService(dir, "/uploads")

	payload := gifPayload()
	url, err := svc.Upload("pompa.gif", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	name := strings.TrimPrefix(url, "/uploads/")
	require.NoError(t, svc.Delete(name))

	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingFile(t *testing.T) {
	svc := NewLocalStorageService(t.TempDir(), "/uploads")
	assert.NoError(t, svc.Delete("gone.gif"))
}

func TestDeleteStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	uploadDir := filepath.Join(dir, "uploads")
	require.NoError(t, os.MkdirAll(uploadDir, 0o755))
	svc := NewLocalStorageService(uploadDir, "/uploads")

	require.NoError(t, svc.Delete("../outside.txt"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
