package wallpaper

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/slimroms/slimwallpaper/util/log"
)

// SaveExt is the extension of saved and staged wallpapers.
const SaveExt = ".png"

// SaveCompression is the PNG compression level used for saved wallpapers.
const SaveCompression = png.BestCompression

// FileManager handles all file system operations for chosen wallpapers: the save
// directory the user keeps copies in and the staging directory images are applied from.
type FileManager struct {
	saveDir  string
	stageDir string
}

// NewFileManager creates a new FileManager.
func NewFileManager(saveDir, stageDir string) *FileManager {
	return &FileManager{
		saveDir:  saveDir,
		stageDir: stageDir,
	}
}

// EnsureSaveDir creates the save directory if it does not exist.
func (fm *FileManager) EnsureSaveDir() error {
	if info, err := os.Stat(fm.saveDir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(fm.saveDir, 0755); err != nil {
		return fmt.Errorf("%w %s: %v", ErrMakeFolder, fm.saveDir, err)
	}
	return nil
}

// validateID ensures the ID does not contain path traversal characters.
func (fm *FileManager) validateID(id string) error {
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid id %q: contains illegal characters", id)
	}
	return nil
}

// SavePath returns the path the wallpaper id is saved to.
func (fm *FileManager) SavePath(id string) (string, error) {
	if err := fm.validateID(id); err != nil {
		return "", err
	}
	return filepath.Join(fm.saveDir, id+SaveExt), nil
}

// Exists reports whether a regular file exists at path.
func (fm *FileManager) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// WritePNG encodes img losslessly to path. Each call writes its own temporary file
// next to path and renames it into place, so concurrent writes of the same path
// never share a file and path never holds a partial image.
func (fm *FileManager) WritePNG(path string, img image.Image) error {
	if img == nil {
		return ErrNoBitmap
	}

	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	tmp := file.Name()
	if err := file.Chmod(0644); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("setting permissions on %s: %w", tmp, err)
	}

	if err := imaging.Encode(file, img, imaging.PNG, imaging.PNGCompressionLevel(SaveCompression)); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}

// Stage writes img under a fresh name in the staging directory and removes earlier
// staged images. A fresh name makes desktops that cache by path pick up the change.
func (fm *FileManager) Stage(img image.Image) (string, error) {
	if err := os.MkdirAll(fm.stageDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory %s: %w", fm.stageDir, err)
	}

	path := filepath.Join(fm.stageDir, uuid.New().String()+SaveExt)
	if err := fm.WritePNG(path, img); err != nil {
		return "", err
	}
	fm.pruneStaged(path)
	return path, nil
}

// pruneStaged removes every staged image except keep.
func (fm *FileManager) pruneStaged(keep string) {
	matches, err := filepath.Glob(filepath.Join(fm.stageDir, "*"+SaveExt))
	if err != nil {
		return
	}
	for _, m := range matches {
		if m == keep {
			continue
		}
		if err := os.Remove(m); err != nil {
			log.Printf("Failed to remove staged wallpaper %s: %v", m, err)
		}
	}
}
