package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFiles calls regen with the path of a watched file each time it is
// written, until ctx is done. Directories are watched rather than files so
// that editors replacing a file on save are still seen.
func watchFiles(ctx context.Context, paths []string, regen func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if p, ok := watched[filepath.Clean(ev.Name)]; ok {
				regen(p)
			}
		}
	}
}
