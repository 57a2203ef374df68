package md2site

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// Job describes one page to build.
type Job struct {
	Title      string // Display title derived from the file name
	InputPath  string // Source file
	OutputPath string // Destination page, always ending in .html
	RelDir     string // Slash-separated directory below the input root, "" at the root
}

// Discover walks inputRoot and returns one Job per regular file.
//
// Within each directory, files come first in name order, then each
// subdirectory is walked in name order. Symbolic links and special files
// are ignored. When outputRoot lies inside inputRoot it is not walked, so a
// rebuild never reads its own output.
//
// An unreadable directory aborts discovery with an error wrapping
// ErrReadDirectory and the underlying os error.
func Discover(inputRoot, outputRoot string) ([]Job, error) {
	d := &discoverer{inputRoot: inputRoot, outputRoot: outputRoot}
	if fileutil.IsWithin(inputRoot, outputRoot) {
		abs, err := filepath.Abs(outputRoot)
		if err == nil {
			d.skip = abs
		}
	}

	jobs := []Job{}
	if err := d.walk("", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

type discoverer struct {
	inputRoot  string
	outputRoot string
	skip       string // absolute output root when nested in the input root
}

func (d *discoverer) walk(relDir string, jobs *[]Job) error {
	dir := filepath.Join(d.inputRoot, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadDirectory, err)
	}

	var subdirs []string
	for _, entry := range entries {
		switch {
		case entry.Type().IsRegular():
			*jobs = append(*jobs, d.job(relDir, entry.Name()))
		case entry.IsDir():
			subdirs = append(subdirs, entry.Name())
		}
	}

	for _, name := range subdirs {
		if d.skipped(filepath.Join(dir, name)) {
			continue
		}
		if err := d.walk(path.Join(relDir, name), jobs); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) job(relDir, name string) Job {
	rel := filepath.FromSlash(relDir)
	return Job{
		Title:      FormatTitle(name),
		InputPath:  filepath.Join(d.inputRoot, rel, name),
		OutputPath: filepath.Join(d.outputRoot, rel, fileutil.TrimExt(name)+".html"),
		RelDir:     relDir,
	}
}

func (d *discoverer) skipped(dir string) bool {
	if d.skip == "" {
		return false
	}
	abs, err := filepath.Abs(dir)
	return err == nil && abs == d.skip
}
